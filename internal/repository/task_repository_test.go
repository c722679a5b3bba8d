package repository_test

import (
	"context"
	"testing"
	"time"

	"simple-kanban/internal/model"
	"simple-kanban/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskFields = []string{"id", "column_id", "title", "description", "position", "created_at", "updated_at"}

func TestTaskRepository_GetByID_IncludesStatus(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	taskID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT tasks\.\*, columns\.name AS status FROM "tasks" JOIN columns ON columns\.id = tasks\.column_id WHERE tasks\.id = \$1`).
		WillReturnRows(sqlmock.NewRows(append(taskFields, "status")).
			AddRow(taskID.String(), uuid.New().String(), "Write docs", nil, 0, now, now, "In Progress"))

	task, err := taskRepo.GetByID(context.Background(), taskID)

	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, "In Progress", task.Status)
	assert.Nil(t, task.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_ClosesGap(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	taskID := uuid.New()
	columnID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields).
			AddRow(taskID.String(), columnID.String(), "Old", nil, 1, now, now))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position - 1`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := taskRepo.Delete(context.Background(), taskID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields))
	mock.ExpectRollback()

	err := taskRepo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_MoveTask_BetweenColumns(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	taskID := uuid.New()
	fromColumn := uuid.New()
	toColumn := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields).
			AddRow(taskID.String(), fromColumn.String(), "Ship it", nil, 2, now, now))
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`UPDATE "tasks" SET "column_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	task, err := taskRepo.MoveTask(context.Background(), taskID, toColumn, 0)

	require.NoError(t, err)
	assert.Equal(t, toColumn, task.ColumnID)
	assert.Equal(t, 0, task.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_MoveTask_WithinColumnUp(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	taskID := uuid.New()
	columnID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields).
			AddRow(taskID.String(), columnID.String(), "Ship it", nil, 3, now, now))
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "tasks" SET "column_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	task, err := taskRepo.MoveTask(context.Background(), taskID, columnID, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, task.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_MoveTask_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields))
	mock.ExpectRollback()

	task, err := taskRepo.MoveTask(context.Background(), uuid.New(), uuid.New(), 0)

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_ShiftsWithinColumn(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)
	taskID := uuid.New()
	columnID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields).
			AddRow(taskID.String(), columnID.String(), "Write docs", nil, 0, now, now))
	// Задачи между старой и новой позицией сдвигаются вверх
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position - 1,"updated_at"=\$1 WHERE \(?column_id = \$2 AND position > \$3 AND position <= \$4`).
		WithArgs(sqlmock.AnyArg(), columnID, 0, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "tasks" SET "column_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	task := &model.Task{ID: taskID, ColumnID: columnID, Title: "Write docs", Position: 2, CreatedAt: now}
	err := taskRepo.Update(context.Background(), task)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskFields))
	mock.ExpectRollback()

	err := taskRepo.Update(context.Background(), &model.Task{ID: uuid.New(), Position: 1})

	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
