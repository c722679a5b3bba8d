package handler_test

import (
	"net/http"
	"testing"

	"simple-kanban/internal/handler"
	"simple-kanban/internal/model"
	"simple-kanban/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupColumnTest() (*gin.Engine, *MockColumnRepository, *MockBoardRepository) {
	r := gin.New()
	columnRepo := new(MockColumnRepository)
	boardRepo := new(MockBoardRepository)
	h := handler.NewColumnHandler(columnRepo, boardRepo)

	r.POST("/columns/", h.Create)
	r.GET("/columns/board/:board_id", h.ListByBoard)
	r.GET("/columns/:id", h.GetByID)
	r.PUT("/columns/:id", h.Update)
	r.DELETE("/columns/:id", h.Delete)
	r.POST("/columns/:id/reorder", h.Reorder)
	return r, columnRepo, boardRepo
}

func TestColumnHandler_Create_AppendsAtEnd(t *testing.T) {
	router, columnRepo, boardRepo := setupColumnTest()
	boardID := uuid.New()

	boardRepo.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID}, nil)
	columnRepo.On("CountByBoardID", mock.Anything, boardID).Return(int64(3), nil)
	columnRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Column) bool {
		return c.Name == "Review" && c.Position == 3 && c.BoardID == boardID
	})).Return(nil)

	resp := performRequest(t, router, http.MethodPost, "/columns/",
		map[string]any{"name": "Review", "board_id": boardID.String()})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body handler.ColumnResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, 3, body.Position)
	columnRepo.AssertExpectations(t)
}

func TestColumnHandler_Create_ExplicitPosition(t *testing.T) {
	router, columnRepo, boardRepo := setupColumnTest()
	boardID := uuid.New()

	boardRepo.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID}, nil)
	columnRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Column) bool {
		return c.Position == 0
	})).Return(nil)

	resp := performRequest(t, router, http.MethodPost, "/columns/",
		map[string]any{"name": "Backlog", "board_id": boardID.String(), "position": 0})

	assert.Equal(t, http.StatusCreated, resp.Code)
	columnRepo.AssertNotCalled(t, "CountByBoardID", mock.Anything, mock.Anything)
}

func TestColumnHandler_Create_BoardMissing(t *testing.T) {
	router, columnRepo, boardRepo := setupColumnTest()
	boardID := uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).Return(nil, repository.ErrBoardNotFound)

	resp := performRequest(t, router, http.MethodPost, "/columns/",
		map[string]any{"name": "Review", "board_id": boardID.String()})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	columnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestColumnHandler_ListByBoard(t *testing.T) {
	router, columnRepo, boardRepo := setupColumnTest()
	boardID := uuid.New()
	columnID := uuid.New()

	boardRepo.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID}, nil)
	columnRepo.On("GetByBoardIDWithTasks", mock.Anything, boardID).Return([]model.Column{
		{ID: columnID, BoardID: boardID, Name: "To Do", Tasks: []model.Task{
			{ID: uuid.New(), ColumnID: columnID, Title: "Write docs", Position: 0},
		}},
		{ID: uuid.New(), BoardID: boardID, Name: "Done", Position: 1},
	}, nil)

	resp := performRequest(t, router, http.MethodGet, "/columns/board/"+boardID.String(), nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body []handler.ColumnWithTasksResponse
	decodeJSON(t, resp, &body)
	require.Len(t, body, 2)
	require.Len(t, body[0].Tasks, 1)
	assert.Equal(t, "Write docs", body[0].Tasks[0].Title)
	assert.Empty(t, body[1].Tasks)
}

func TestColumnHandler_GetByID_NotFound(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()
	columnRepo.On("GetWithTasks", mock.Anything, columnID).Return(nil, repository.ErrColumnNotFound)

	resp := performRequest(t, router, http.MethodGet, "/columns/"+columnID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestColumnHandler_Update_RenameAndMove(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()
	boardID := uuid.New()

	columnRepo.On("GetByID", mock.Anything, columnID).
		Return(&model.Column{ID: columnID, BoardID: boardID, Name: "Old", Position: 0}, nil)
	columnRepo.On("MoveColumn", mock.Anything, columnID, 2).
		Return(&model.Column{ID: columnID, BoardID: boardID, Name: "Old", Position: 2}, nil)
	columnRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Column) bool {
		return c.Name == "New" && c.Position == 2
	})).Return(nil)

	resp := performRequest(t, router, http.MethodPut, "/columns/"+columnID.String(),
		map[string]any{"name": "New", "position": 2})

	require.Equal(t, http.StatusOK, resp.Code)
	var body handler.ColumnResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "New", body.Name)
	assert.Equal(t, 2, body.Position)
	columnRepo.AssertExpectations(t)
}

func TestColumnHandler_Update_SamePositionSkipsMove(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()

	columnRepo.On("GetByID", mock.Anything, columnID).
		Return(&model.Column{ID: columnID, Name: "Old", Position: 1}, nil)
	columnRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp := performRequest(t, router, http.MethodPut, "/columns/"+columnID.String(),
		map[string]any{"name": "New", "position": 1})

	assert.Equal(t, http.StatusOK, resp.Code)
	columnRepo.AssertNotCalled(t, "MoveColumn", mock.Anything, mock.Anything, mock.Anything)
}

func TestColumnHandler_Delete(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	existing, missing := uuid.New(), uuid.New()
	columnRepo.On("Delete", mock.Anything, existing).Return(nil)
	columnRepo.On("Delete", mock.Anything, missing).Return(repository.ErrColumnNotFound)

	resp := performRequest(t, router, http.MethodDelete, "/columns/"+existing.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = performRequest(t, router, http.MethodDelete, "/columns/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestColumnHandler_Reorder(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()
	columnRepo.On("MoveColumn", mock.Anything, columnID, 1).
		Return(&model.Column{ID: columnID, Name: "Done", Position: 1}, nil)

	resp := performRequest(t, router, http.MethodPost, "/columns/"+columnID.String()+"/reorder?new_position=1", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Column reordered successfully")
}

func TestColumnHandler_Reorder_InvalidPosition(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()

	for _, query := range []string{"", "?new_position=abc", "?new_position=-1"} {
		resp := performRequest(t, router, http.MethodPost, "/columns/"+columnID.String()+"/reorder"+query, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code, query)
	}
	columnRepo.AssertNotCalled(t, "MoveColumn", mock.Anything, mock.Anything, mock.Anything)
}

func TestColumnHandler_Reorder_NotFound(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()
	columnRepo.On("MoveColumn", mock.Anything, columnID, 0).Return(nil, repository.ErrColumnNotFound)

	resp := performRequest(t, router, http.MethodPost, "/columns/"+columnID.String()+"/reorder?new_position=0", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestColumnHandler_Update_ColumnRemovedBeforeMove(t *testing.T) {
	router, columnRepo, _ := setupColumnTest()
	columnID := uuid.New()

	columnRepo.On("GetByID", mock.Anything, columnID).
		Return(&model.Column{ID: columnID, Name: "Old", Position: 0}, nil)
	columnRepo.On("MoveColumn", mock.Anything, columnID, 2).Return(nil, repository.ErrColumnNotFound)

	resp := performRequest(t, router, http.MethodPut, "/columns/"+columnID.String(), map[string]any{"position": 2})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"error":"Column not found"}`, resp.Body.String())
	columnRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
