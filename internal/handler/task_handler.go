package handler

import (
	"errors"
	"net/http"

	"simple-kanban/internal/model"
	"simple-kanban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo   repository.TaskRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, columnRepo repository.ColumnRepositoryInterface) *TaskHandler {
	return &TaskHandler{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
	}
}

// CreateTaskRequest представляет запрос на создание задачи
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	ColumnID    string  `json:"column_id" binding:"required,uuid"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

// UpdateTaskRequest представляет запрос на частичное обновление задачи
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

// TaskMoveRequest представляет запрос на перемещение задачи
type TaskMoveRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
	Position *int   `json:"position" binding:"required,min=0"`
}

// Create создает задачу в колонке; без позиции задача добавляется в конец
// @Summary      Create task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body  CreateTaskRequest  true  "Task"
// @Success      201  {object}  TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	column, err := h.columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		}
		return
	}

	var position int
	if req.Position != nil {
		position = *req.Position
	} else {
		count, err := h.taskRepo.CountByColumnID(c.Request.Context(), columnID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
			return
		}
		position = int(count)
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    columnID,
		Position:    position,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	task.Status = column.Name

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetByID возвращает задачу вместе со статусом (именем колонки)
// @Summary      Get task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update обновляет заголовок, описание или позицию задачи внутри колонки
// @Summary      Update task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Param        task  body  UpdateTaskRequest  true  "Fields to change"
// @Success      200  {object}  TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Move перемещает задачу в другую колонку или на другую позицию
// @Summary      Move task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Param        move  body  TaskMoveRequest  true  "Target column and position"
// @Success      200  {object}  TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	targetColumnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	// Проверяем существование целевой колонки
	targetColumn, err := h.columnRepo.GetByID(c.Request.Context(), targetColumnID)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target column not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve target column"})
		}
		return
	}

	task, err := h.taskRepo.MoveTask(c.Request.Context(), taskID, targetColumnID, *req.Position)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		}
		return
	}
	task.Status = targetColumn.Name

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete удаляет задачу и сдвигает оставшиеся задачи колонки
// @Summary      Delete task
// @Tags         Tasks
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
