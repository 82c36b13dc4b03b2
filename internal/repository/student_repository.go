package repository

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"studentrecords/internal/model"
)

// StudentRepository is the keyed store of student records. Implementations
// return model.ErrNotFound and model.ErrDuplicateKey for the respective
// conditions and wrap every other failure.
type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) error
	FindByRoll(ctx context.Context, roll int) (*model.Student, error)
	FindAll(ctx context.Context) ([]model.Student, error)
	FindAllByPercentageDesc(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, roll int) error
	Count(ctx context.Context) (int64, error)
	// Transaction runs fn against a repository bound to one transaction.
	// The transaction is rolled back if fn returns an error.
	Transaction(ctx context.Context, fn func(repo StudentRepository) error) error
}

type GormStudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) Create(ctx context.Context, s *model.Student) error {
	db := r.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&model.Student{}).Where("roll = ?", s.Roll).Count(&existing).Error; err != nil {
		return errors.Wrap(err, "failed to check roll")
	}
	if existing > 0 {
		return model.ErrDuplicateKey
	}

	// A racing insert still trips the primary key constraint.
	if err := db.Create(s).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrDuplicateKey
		}
		return errors.Wrapf(err, "failed to insert student %d", s.Roll)
	}
	return nil
}

func (r *GormStudentRepository) FindByRoll(ctx context.Context, roll int) (*model.Student, error) {
	var s model.Student
	err := r.db.WithContext(ctx).Where("roll = ?", roll).First(&s).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load student %d", roll)
	}
	return &s, nil
}

func (r *GormStudentRepository) FindAll(ctx context.Context) ([]model.Student, error) {
	students := []model.Student{}
	if err := r.db.WithContext(ctx).Order("roll asc").Find(&students).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list students")
	}
	return students, nil
}

// FindAllByPercentageDesc orders by percentage, highest first. Equal
// percentages are ordered by ascending roll.
func (r *GormStudentRepository) FindAllByPercentageDesc(ctx context.Context) ([]model.Student, error) {
	students := []model.Student{}
	err := r.db.WithContext(ctx).
		Order("percentage desc").
		Order("roll asc").
		Find(&students).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list students by percentage")
	}
	return students, nil
}

// Update replaces every column of the stored record with the values in s.
func (r *GormStudentRepository) Update(ctx context.Context, s *model.Student) error {
	res := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("roll = ?", s.Roll).
		Select("*").
		Omit("roll").
		Updates(s)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to update student %d", s.Roll)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *GormStudentRepository) Delete(ctx context.Context, roll int) error {
	res := r.db.WithContext(ctx).Where("roll = ?", roll).Delete(&model.Student{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete student %d", roll)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *GormStudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count students")
	}
	return count, nil
}

func (r *GormStudentRepository) Transaction(ctx context.Context, fn func(repo StudentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStudentRepository{db: tx})
	})
}
