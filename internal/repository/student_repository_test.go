package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"studentrecords/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Student{}))
	return db
}

func newStudent(roll int, marks ...float64) *model.Student {
	s := &model.Student{Roll: roll, Name: "Student", Age: 20, Branch: "Civil"}
	for i, m := range s.Marks() {
		if i < len(marks) {
			*m = marks[i]
		}
	}
	s.Normalize()
	return s
}

func TestCreateAndFindByRoll(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	s := newStudent(101, 95, 92, 88, 90, 94)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.FindByRoll(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, *s, *got)
	assert.Equal(t, "A", got.Grade)
}

func TestCreateDuplicateLeavesRecordUnchanged(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	original := newStudent(5, 70, 70, 70, 70, 70)
	require.NoError(t, repo.Create(ctx, original))

	dup := newStudent(5, 10, 10, 10, 10, 10)
	dup.Name = "Impostor"
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, model.ErrDuplicateKey))

	got, err := repo.FindByRoll(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, *original, *got)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindByRollNotFound(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))

	_, err := repo.FindByRoll(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFindAll(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	for _, roll := range []int{3, 1, 2} {
		require.NoError(t, repo.Create(ctx, newStudent(roll, 50)))
	}
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindAllByPercentageDesc(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	students := []*model.Student{
		newStudent(1, 65, 68, 62, 66, 63), // 64.8
		newStudent(2, 95, 92, 88, 90, 94), // 91.8
		newStudent(3, 40, 40, 40, 40, 40),
		newStudent(4, 75, 78, 72, 76, 74),
	}
	for _, s := range students {
		require.NoError(t, repo.Create(ctx, s))
	}

	sorted, err := repo.FindAllByPercentageDesc(ctx)
	require.NoError(t, err)
	require.Len(t, sorted, 4)

	assert.Equal(t, 2, sorted[0].Roll)
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].Percentage, sorted[i].Percentage)
	}
}

func TestFindAllByPercentageDescBreaksTiesByRoll(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	for _, roll := range []int{30, 10, 20} {
		require.NoError(t, repo.Create(ctx, newStudent(roll, 80, 80, 80, 80, 80)))
	}
	require.NoError(t, repo.Create(ctx, newStudent(5, 10, 10, 10, 10, 10)))

	sorted, err := repo.FindAllByPercentageDesc(ctx)
	require.NoError(t, err)

	rolls := make([]int, 0, len(sorted))
	for _, s := range sorted {
		rolls = append(rolls, s.Roll)
	}
	assert.Equal(t, []int{10, 20, 30, 5}, rolls)
}

func TestUpdate(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStudent(7, 90, 90, 90, 90, 90)))

	changed := newStudent(7, 0, 0, 0, 0, 0)
	changed.Name = ""
	changed.Age = 0
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.FindByRoll(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "", got.Name)
	assert.Equal(t, 0, got.Age)
	assert.Equal(t, 0.0, got.Percentage)
	assert.Equal(t, "F", got.Grade)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))

	err := repo.Update(context.Background(), newStudent(8, 50))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStudent(1, 50)))
	require.NoError(t, repo.Create(ctx, newStudent(2, 50)))

	require.NoError(t, repo.Delete(ctx, 1))
	_, err := repo.FindByRoll(ctx, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteNotFoundKeepsCount(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStudent(1, 50)))

	err := repo.Delete(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactionRollsBack(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx StudentRepository) error {
		require.NoError(t, tx.Create(ctx, newStudent(1, 50)))
		return tx.Create(ctx, newStudent(1, 60))
	})
	assert.ErrorIs(t, err, model.ErrDuplicateKey)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	require.NoError(t, db.Migrator().DropTable(&model.Student{}))

	_, err := repo.Count(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrNotFound))
	assert.Contains(t, err.Error(), "failed to count students")
}
