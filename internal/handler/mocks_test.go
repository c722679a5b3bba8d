package handler_test

import (
	"context"

	"simple-kanban/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Моки репозиториев

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardRepository) GetWithColumns(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) Create(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockColumnRepository) GetWithTasks(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

func (m *MockColumnRepository) GetByBoardIDWithTasks(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

func (m *MockColumnRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockColumnRepository) Update(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColumnRepository) MoveColumn(ctx context.Context, id uuid.UUID, newPosition int) (*model.Column, error) {
	args := m.Called(ctx, id, newPosition)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockColumnRepository) ReorderColumns(ctx context.Context, boardID uuid.UUID, order []uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID, order)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, columnID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) CountByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error) {
	args := m.Called(ctx, columnID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) (*model.Task, error) {
	args := m.Called(ctx, taskID, columnID, newPosition)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}
