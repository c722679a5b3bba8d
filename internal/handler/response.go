package handler

import (
	"net/http"
	"time"

	"simple-kanban/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// BoardDetailResponse is a board with its columns and their tasks
type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnWithTasksResponse `json:"columns"`
}

type ColumnResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	BoardID   string `json:"board_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ColumnWithTasksResponse struct {
	ColumnResponse
	Tasks []TaskSummaryResponse `json:"tasks"`
}

// TaskSummaryResponse is the task shape nested inside columns
type TaskSummaryResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Position    int     `json:"position"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Position    int     `json:"position"`
	ColumnID    string  `json:"column_id"`
	Status      string  `json:"status,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:          board.ID.String(),
		Name:        board.Name,
		Description: board.Description,
		CreatedAt:   formatTime(board.CreatedAt),
		UpdatedAt:   formatTime(board.UpdatedAt),
	}
}

func toBoardDetailResponse(board *model.Board) BoardDetailResponse {
	return BoardDetailResponse{
		BoardResponse: toBoardResponse(board),
		Columns:       toColumnsWithTasks(board.Columns),
	}
}

func toColumnResponse(column *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:        column.ID.String(),
		Name:      column.Name,
		Position:  column.Position,
		BoardID:   column.BoardID.String(),
		CreatedAt: formatTime(column.CreatedAt),
		UpdatedAt: formatTime(column.UpdatedAt),
	}
}

func toColumnResponses(columns []model.Column) []ColumnResponse {
	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = toColumnResponse(&columns[i])
	}
	return response
}

func toColumnWithTasks(column *model.Column) ColumnWithTasksResponse {
	tasks := make([]TaskSummaryResponse, len(column.Tasks))
	for i, task := range column.Tasks {
		tasks[i] = TaskSummaryResponse{
			ID:          task.ID.String(),
			Title:       task.Title,
			Description: task.Description,
			Position:    task.Position,
		}
	}
	return ColumnWithTasksResponse{
		ColumnResponse: toColumnResponse(column),
		Tasks:          tasks,
	}
}

func toColumnsWithTasks(columns []model.Column) []ColumnWithTasksResponse {
	response := make([]ColumnWithTasksResponse, len(columns))
	for i := range columns {
		response[i] = toColumnWithTasks(&columns[i])
	}
	return response
}

func toTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Position:    task.Position,
		ColumnID:    task.ColumnID.String(),
		Status:      task.Status,
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
	}
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

// parseID reads a uuid path parameter and answers 400 when it is malformed.
func parseID(c *gin.Context, param, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + entity + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}
