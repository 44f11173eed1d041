package models

// Task is a to-do item held in memory.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskInput is the payload accepted when creating a task.
type TaskInput struct {
	Title string `json:"title" validate:"required"`
}

func (in TaskInput) Validate() error {
	return validateStruct(in)
}
