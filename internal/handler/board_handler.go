package handler

import (
	"errors"
	"net/http"

	"simple-kanban/internal/model"
	"simple-kanban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo  repository.BoardRepositoryInterface
	columnRepo repository.ColumnRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface, columnRepo repository.ColumnRepositoryInterface) *BoardHandler {
	return &BoardHandler{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
	}
}

type CreateBoardRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateBoardRequest applies only the fields that are present
type UpdateBoardRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids" binding:"required,dive,uuid"`
}

// Create creates a board with the default "To Do", "In Progress" and "Done" columns
// @Summary      Create board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board  body      CreateBoardRequest  true  "Board"
// @Success      201    {object}  BoardResponse
// @Failure      400    {object}  map[string]string
// @Router       /boards/ [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := &model.Board{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll lists every board
// @Summary      List boards
// @Tags         Boards
// @Produce      json
// @Success      200  {array}  BoardResponse
// @Router       /boards/ [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boardRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID returns the board with its columns and tasks, both ordered by position
// @Summary      Get board
// @Tags         Boards
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  BoardDetailResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.boardRepo.GetWithColumns(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		}
		return
	}

	c.JSON(http.StatusOK, toBoardDetailResponse(board))
}

// Update changes the name and/or description of a board
// @Summary      Update board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Board ID"
// @Param        board  body      UpdateBoardRequest  true  "Fields to change"
// @Success      200    {object}  BoardResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		}
		return
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = req.Description
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// GetColumns lists the columns of a board by position
// @Summary      List board columns
// @Tags         Boards
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {array}   ColumnResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /boards/{id}/columns [get]
func (h *BoardHandler) GetColumns(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
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

	columns, err := h.columnRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	c.JSON(http.StatusOK, toColumnResponses(columns))
}

// ReorderColumns renumbers the board's columns in the given order
// @Summary      Reorder board columns
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        id     path      string                 true  "Board ID"
// @Param        order  body      ReorderColumnsRequest  true  "Column order"
// @Success      200    {array}   ColumnResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /boards/{id}/columns/reorder [post]
func (h *BoardHandler) ReorderColumns(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	order := make([]uuid.UUID, len(req.ColumnIDs))
	for i, raw := range req.ColumnIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		order[i] = id
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		}
		return
	}

	columns, err := h.columnRepo.ReorderColumns(c.Request.Context(), boardID, order)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotOnBoard) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Column does not belong to this board"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder columns"})
		}
		return
	}

	c.JSON(http.StatusOK, toColumnResponses(columns))
}

// Delete removes the board together with its columns and tasks
// @Summary      Delete board
// @Tags         Boards
// @Param        id   path  string  true  "Board ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
