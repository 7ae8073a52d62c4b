package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// defaultHistoryLimit is used when recent_playback gets no limit.
const defaultHistoryLimit = 20

// TaskOutput describes one sound task.
type TaskOutput struct {
	ID              string  `json:"id"`
	FilePath        string  `json:"file_path"`
	Label           string  `json:"label"`
	IntervalMinutes float64 `json:"interval_minutes"`
	Active          bool    `json:"active"`
	Missing         bool    `json:"missing,omitempty"`
	LastPlayed      string  `json:"last_played,omitempty"`
	Plays           uint64  `json:"plays"`
	Failures        uint64  `json:"failures"`
}

func taskOutput(t *domain.SoundTask) TaskOutput {
	snap := t.Snapshot()
	out := TaskOutput{
		ID:              snap.ID,
		FilePath:        snap.FilePath,
		Label:           snap.Label(),
		IntervalMinutes: snap.IntervalMinutes,
		Active:          snap.Active,
		Missing:         snap.Missing,
		Plays:           snap.Plays,
		Failures:        snap.Failures,
	}
	if !snap.NeverPlayed() {
		out.LastPlayed = snap.LastPlayed.Format(time.RFC3339)
	}
	return out
}

// ListTasksInput is the input schema for list_tasks.
type ListTasksInput struct{}

// ListTasksOutput is the output schema for list_tasks.
type ListTasksOutput struct {
	Tasks   []TaskOutput `json:"tasks"`
	Count   int          `json:"count"`
	Running int          `json:"running"`
}

// AddTaskInput is the input schema for add_task.
type AddTaskInput struct {
	FilePath        string  `json:"file_path" jsonschema:"path of an existing audio file"`
	IntervalMinutes float64 `json:"interval_minutes" jsonschema:"repeat interval in minutes, greater than zero"`
}

// UpdateTaskInput is the input schema for update_task.
type UpdateTaskInput struct {
	ID              string  `json:"id" jsonschema:"task id from list_tasks"`
	IntervalMinutes float64 `json:"interval_minutes" jsonschema:"new repeat interval in minutes, greater than zero"`
}

// TaskIDInput is the input schema for tools addressing one task.
type TaskIDInput struct {
	ID string `json:"id" jsonschema:"task id from list_tasks"`
}

// RemoveTaskOutput is the output schema for remove_task.
type RemoveTaskOutput struct {
	Removed string `json:"removed"`
}

// RecentPlaybackInput is the input schema for recent_playback.
type RecentPlaybackInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of events to return (default 20)"`
}

// PlaybackOutput describes one playback attempt.
type PlaybackOutput struct {
	TaskID  string `json:"task_id,omitempty"`
	Path    string `json:"path"`
	At      string `json:"at"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// RecentPlaybackOutput is the output schema for recent_playback.
type RecentPlaybackOutput struct {
	Events []PlaybackOutput `json:"events"`
	Count  int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List registered sound tasks in display order",
	}, s.handleListTasks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_task",
		Description: "Play an audio file every N minutes",
	}, s.handleAddTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_task",
		Description: "Change a task's interval; this also resumes a paused task",
	}, s.handleUpdateTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_task",
		Description: "Stop a task and remove it",
	}, s.handleRemoveTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pause_task",
		Description: "Stop a task without removing it",
	}, s.handlePauseTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resume_task",
		Description: "Restart a paused task",
	}, s.handleResumeTask)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent_playback",
		Description: "Recent playback attempts, newest first",
	}, s.handleRecentPlayback)
}

func (s *Server) handleListTasks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListTasksInput,
) (*mcp.CallToolResult, ListTasksOutput, error) {
	tasks, err := s.ports.Registry.List(ctx)
	if err != nil {
		return nil, ListTasksOutput{}, err
	}

	out := ListTasksOutput{
		Tasks: make([]TaskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskOutput(t)
	}
	if s.ports.Scheduler != nil {
		out.Running = s.ports.Scheduler.Running()
	}
	return nil, out, nil
}

func (s *Server) handleAddTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddTaskInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	t, err := s.ports.Registry.AddMinutes(ctx, input.FilePath, input.IntervalMinutes)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, taskOutput(t), nil
}

func (s *Server) handleUpdateTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateTaskInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	t, err := s.ports.Registry.Update(ctx, input.ID, domain.FormatMinutes(input.IntervalMinutes))
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, taskOutput(t), nil
}

func (s *Server) handleRemoveTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskIDInput,
) (*mcp.CallToolResult, RemoveTaskOutput, error) {
	if err := s.ports.Registry.Remove(ctx, input.ID); err != nil {
		return nil, RemoveTaskOutput{}, err
	}
	return nil, RemoveTaskOutput{Removed: input.ID}, nil
}

func (s *Server) handlePauseTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskIDInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	t, err := s.ports.Registry.Pause(ctx, input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, taskOutput(t), nil
}

func (s *Server) handleResumeTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskIDInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	t, err := s.ports.Registry.Resume(ctx, input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, taskOutput(t), nil
}

func (s *Server) handleRecentPlayback(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RecentPlaybackInput,
) (*mcp.CallToolResult, RecentPlaybackOutput, error) {
	out := RecentPlaybackOutput{Events: []PlaybackOutput{}}
	if s.ports.History == nil {
		return nil, out, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	for _, ev := range s.ports.History.Recent(limit) {
		out.Events = append(out.Events, PlaybackOutput{
			TaskID:  ev.TaskID,
			Path:    ev.Path,
			At:      ev.At.Format(time.RFC3339),
			Outcome: string(ev.Outcome),
			Error:   ev.ErrorString(),
		})
	}
	out.Count = len(out.Events)
	return nil, out, nil
}
