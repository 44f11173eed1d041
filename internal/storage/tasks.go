package storage

import (
	"slices"
	"sync"

	"crud-apps/internal/models"
)

// TaskStore keeps to-do items in memory for the lifetime of the process.
// Ids come from a monotonic counter and are never reused.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []models.Task
	nextID int64
}

func NewTaskStore() *TaskStore {
	return &TaskStore{nextID: 1}
}

// List returns a copy of all tasks in insertion order.
func (s *TaskStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Create appends a new, incomplete task.
func (s *TaskStore) Create(title string) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{ID: s.nextID, Title: title}
	s.tasks = append(s.tasks, task)
	s.nextID++
	return task
}

// Toggle flips the completed flag of the task with the given id.
func (s *TaskStore) Toggle(id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], nil
}

// Delete removes the task with the given id and returns it.
func (s *TaskStore) Delete(id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	task := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return task, nil
}

func (s *TaskStore) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}
