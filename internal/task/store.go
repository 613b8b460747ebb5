// Package task tracks the lifecycle of asynchronous generation tasks.
package task

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is a task lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task is a snapshot of one generation request's state. The store hands out
// copies, so callers can never mutate shared state.
type Task struct {
	ID          string     `json:"task_id"`
	Prompt      string     `json:"prompt"`
	Status      Status     `json:"status"`
	Progress    float64    `json:"progress"`
	Message     string     `json:"message,omitempty"`
	ProjectName string     `json:"project_name,omitempty"`
	ProjectPath string     `json:"project_path,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (t Task) clone() Task {
	c := t
	c.Warnings = append([]string(nil), t.Warnings...)
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		c.CompletedAt = &done
	}
	return c
}

// Store holds tasks in memory. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	now   func() time.Time
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{
		tasks: make(map[string]*Task),
		now:   time.Now,
	}
}

// Create registers a new pending task for a prompt and returns its snapshot.
func (s *Store) Create(prompt string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Status:    StatusPending,
		CreatedAt: s.now().UTC(),
	}
	s.tasks[t.ID] = t
	return t.clone()
}

// Get returns a snapshot of the task with the given id.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("task not found: %s", id)
	}
	return t.clone(), nil
}

// List returns snapshots of all tasks, newest first.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SetProgress moves a task to in_progress with a progress value and message.
// Progress never moves backwards and is clamped to [0, 1].
func (s *Store) SetProgress(id string, progress float64, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	if t.Status == StatusCompleted || t.Status == StatusFailed {
		return fmt.Errorf("task %s already finished", id)
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	if progress > t.Progress {
		t.Progress = progress
	}
	t.Status = StatusInProgress
	t.Message = message
	return nil
}

// Complete marks a task finished, recording where the project landed and any
// per-file warnings.
func (s *Store) Complete(id, projectName, projectPath string, warnings []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	done := s.now().UTC()
	t.Status = StatusCompleted
	t.Progress = 1
	t.Message = "generation complete"
	t.ProjectName = projectName
	t.ProjectPath = projectPath
	t.Warnings = append([]string(nil), warnings...)
	t.CompletedAt = &done
	return nil
}

// Fail marks a task failed with an error message. Progress keeps its last
// value.
func (s *Store) Fail(id string, taskErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	done := s.now().UTC()
	t.Status = StatusFailed
	t.Error = taskErr.Error()
	t.Message = "generation failed"
	t.CompletedAt = &done
	return nil
}
