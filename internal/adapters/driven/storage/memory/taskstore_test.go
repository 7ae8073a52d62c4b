package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chime/internal/core/domain"
)

func newTask(id string) *domain.SoundTask {
	return domain.NewSoundTask(id, "/sounds/"+id+".wav", 5, time.Now())
}

func TestTaskStore_AppendKeepsOrder(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, newTask(id)))
	}

	tasks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
	assert.Equal(t, "c", tasks[2].ID)
	assert.Equal(t, 3, store.Len(ctx))
}

func TestTaskStore_Append_Rejects(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Append(ctx, nil), domain.ErrInvalidInput)

	require.NoError(t, store.Append(ctx, newTask("a")))
	assert.ErrorIs(t, store.Append(ctx, newTask("a")), domain.ErrInvalidInput)
	assert.Equal(t, 1, store.Len(ctx))
}

func TestTaskStore_GetAndAt(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	a, b := newTask("a"), newTask("b")
	require.NoError(t, store.Append(ctx, a))
	require.NoError(t, store.Append(ctx, b))

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = store.At(ctx, 0)
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestTaskStore_NotFound(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, newTask("a")))

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, idx := range []int{-1, 1, 100} {
		_, err = store.At(ctx, idx)
		assert.ErrorIs(t, err, domain.ErrNotFound, "index %d", idx)
	}

	assert.ErrorIs(t, store.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestTaskStore_DeleteShiftsPositions(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, newTask(id)))
	}

	require.NoError(t, store.Delete(ctx, "b"))

	got, err := store.At(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)
	assert.Equal(t, 2, store.Len(ctx))
}

func TestTaskStore_ListIsACopy(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, newTask("a")))

	tasks, err := store.List(ctx)
	require.NoError(t, err)
	tasks[0] = newTask("other")

	got, err := store.At(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}

func TestTaskStore_ConcurrentAccess(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Append(ctx, newTask(fmt.Sprintf("t-%d", n)))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len(ctx))
}
