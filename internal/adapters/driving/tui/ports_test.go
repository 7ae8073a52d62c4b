package tui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/chime/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chime/internal/core/domain"
	"github.com/custodia-labs/chime/internal/core/services"
)

// idleScheduler records scheduled tasks without running workers.
type idleScheduler struct {
	mu        sync.Mutex
	scheduled []string
}

func (s *idleScheduler) Schedule(task *domain.SoundTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, task.ID)
	return true
}

func (s *idleScheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

func (s *idleScheduler) Stop() {}
func (s *idleScheduler) Wait() {}

func newTestPorts() *Ports {
	sched := &idleScheduler{}
	return NewPorts(services.NewTaskRegistry(memory.NewTaskStore(), sched), sched)
}

func TestNewPorts(t *testing.T) {
	p := newTestPorts()

	assert.NotNil(t, p.Registry)
	assert.NotNil(t, p.Scheduler)
	assert.Nil(t, p.History)
	assert.NoError(t, p.Validate())
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingTaskRegistry)
}
