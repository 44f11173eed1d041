package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/models"
)

type TaskStore interface {
	List() []models.Task
	Create(title string) models.Task
	Toggle(id int64) (models.Task, error)
	Delete(id int64) (models.Task, error)
}

type TaskHandler struct {
	store  TaskStore
	render *Renderer
	log    logrus.FieldLogger
}

func NewTaskHandler(store TaskStore, render *Renderer, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{store: store, render: render, log: log}
}

func (h *TaskHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// Create accepts the title as a form field or JSON.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	in := models.TaskInput{Title: strings.TrimSpace(req.Title)}
	if err := in.Validate(); err != nil {
		handleError(c, h.log, err)
		return
	}

	task := h.store.Create(in.Title)
	h.log.WithField("task_id", task.ID).Debug("task created")
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.store.Toggle(id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.store.Delete(id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// TasksPage is the data passed to the task dashboard.
type TasksPage struct {
	Tasks     []models.Task
	Completed int
	Remaining int
}

func (h *TaskHandler) Dashboard(c *gin.Context) {
	tasks := h.store.List()
	page := TasksPage{Tasks: tasks}
	for _, t := range tasks {
		if t.Completed {
			page.Completed++
		} else {
			page.Remaining++
		}
	}
	h.render.Render(c, "tasks.html", page)
}
