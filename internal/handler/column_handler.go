package handler

import (
	"errors"
	"net/http"
	"strconv"

	"simple-kanban/internal/model"
	"simple-kanban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnHandler struct {
	columnRepo repository.ColumnRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
}

func NewColumnHandler(columnRepo repository.ColumnRepositoryInterface, boardRepo repository.BoardRepositoryInterface) *ColumnHandler {
	return &ColumnHandler{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

type CreateColumnRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	BoardID  string `json:"board_id" binding:"required,uuid"`
	Position *int   `json:"position" binding:"omitempty,min=0"`
}

type UpdateColumnRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}

// Create adds a column to a board. Without a position it goes to the end.
// @Summary      Create column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        column  body  CreateColumnRequest  true  "Column"
// @Success      201  {object}  ColumnResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/ [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		}
		return
	}

	var position int
	if req.Position != nil {
		position = *req.Position
	} else {
		count, err := h.columnRepo.CountByBoardID(c.Request.Context(), boardID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count columns"})
			return
		}
		position = int(count)
	}

	column := &model.Column{
		Name:     req.Name,
		BoardID:  boardID,
		Position: position,
	}

	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, toColumnResponse(column))
}

// ListByBoard returns the board's columns with their tasks
// @Summary      List columns of a board with their tasks
// @Tags         Columns
// @Produce      json
// @Param        board_id  path  string  true  "Board ID"
// @Success      200  {array}  ColumnWithTasksResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/board/{board_id} [get]
func (h *ColumnHandler) ListByBoard(c *gin.Context) {
	boardID, ok := parseID(c, "board_id", "board")
	if !ok {
		return
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		}
		return
	}

	columns, err := h.columnRepo.GetByBoardIDWithTasks(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	c.JSON(http.StatusOK, toColumnsWithTasks(columns))
}

// @Summary      Get column
// @Tags         Columns
// @Produce      json
// @Param        id  path  string  true  "Column ID"
// @Success      200  {object}  ColumnWithTasksResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/{id} [get]
func (h *ColumnHandler) GetByID(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	column, err := h.columnRepo.GetWithTasks(c.Request.Context(), columnID)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		}
		return
	}

	c.JSON(http.StatusOK, toColumnWithTasks(column))
}

// Update renames a column and/or moves it. A move shifts the columns in between.
// @Summary      Update column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Column ID"
// @Param        column  body  UpdateColumnRequest  true  "Fields to change"
// @Success      200  {object}  ColumnResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	if req.Position != nil && *req.Position != column.Position {
		column, err = h.columnRepo.MoveColumn(c.Request.Context(), columnID, *req.Position)
		if err != nil {
			if errors.Is(err, repository.ErrColumnNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move column"})
			}
			return
		}
	}

	if req.Name != nil {
		column.Name = *req.Name
		if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
			return
		}
	}

	c.JSON(http.StatusOK, toColumnResponse(column))
}

// @Summary      Delete column
// @Tags         Columns
// @Param        id  path  string  true  "Column ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	if err := h.columnRepo.Delete(c.Request.Context(), columnID); err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Reorder moves a column to the position given by the new_position query parameter
// @Summary      Move column
// @Tags         Columns
// @Produce      json
// @Param        id  path  string  true  "Column ID"
// @Param        new_position  query  integer  true  "Target position"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /columns/{id}/reorder [post]
func (h *ColumnHandler) Reorder(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	newPosition, err := strconv.Atoi(c.Query("new_position"))
	if err != nil || newPosition < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_position must be a non-negative integer"})
		return
	}

	column, err := h.columnRepo.MoveColumn(c.Request.Context(), columnID, newPosition)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder column"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Column reordered successfully",
		"column":  toColumnResponse(column),
	})
}
