package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"studentrecords/internal/model"
	"studentrecords/internal/repository"
)

type StudentService struct {
	repo repository.StudentRepository
	log  logrus.FieldLogger
}

func NewStudentService(repo repository.StudentRepository, log logrus.FieldLogger) *StudentService {
	return &StudentService{repo: repo, log: log}
}

func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	student := req.ToModel()
	student.Normalize()

	if err := s.repo.Create(ctx, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) Get(ctx context.Context, roll int) (*model.Student, error) {
	return s.repo.FindByRoll(ctx, roll)
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.repo.FindAll(ctx)
}

func (s *StudentService) ListSorted(ctx context.Context) ([]model.Student, error) {
	return s.repo.FindAllByPercentageDesc(ctx)
}

func (s *StudentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Update merges the supplied fields over the stored record and recomputes
// the derived fields. The read and the write share one transaction.
func (s *StudentService) Update(ctx context.Context, roll int, req *model.UpdateStudentRequest) (*model.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Student
	err := s.repo.Transaction(ctx, func(repo repository.StudentRepository) error {
		student, err := repo.FindByRoll(ctx, roll)
		if err != nil {
			return err
		}
		req.ApplyTo(student)
		student.Normalize()
		if err := repo.Update(ctx, student); err != nil {
			return err
		}
		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *StudentService) Delete(ctx context.Context, roll int) error {
	return s.repo.Delete(ctx, roll)
}

// Seed inserts the sample students when the store is empty. It reports
// whether anything was inserted and either the number inserted or the
// number already present.
func (s *StudentService) Seed(ctx context.Context) (bool, int64, error) {
	var (
		seeded bool
		count  int64
	)
	err := s.repo.Transaction(ctx, func(repo repository.StudentRepository) error {
		existing, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			count = existing
			return nil
		}

		for _, student := range SampleStudents() {
			student.Normalize()
			if err := repo.Create(ctx, &student); err != nil {
				return err
			}
			count++
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	if seeded {
		s.log.WithField("count", count).Info("seeded sample students")
	}
	return seeded, count, nil
}

// SampleStudents returns the fixed seed set, not yet normalized.
func SampleStudents() []model.Student {
	return []model.Student{
		{Roll: 101, Name: "Rajesh Kumar", Age: 20, Branch: "Computer Science", Mark1: 95, Mark2: 92, Mark3: 88, Mark4: 90, Mark5: 94},
		{Roll: 102, Name: "Priya Sharma", Age: 21, Branch: "Electronics", Mark1: 85, Mark2: 87, Mark3: 82, Mark4: 86, Mark5: 84},
		{Roll: 103, Name: "Amit Singh", Age: 19, Branch: "Mechanical", Mark1: 75, Mark2: 78, Mark3: 72, Mark4: 76, Mark5: 74},
		{Roll: 104, Name: "Sneha Patel", Age: 20, Branch: "Computer Science", Mark1: 65, Mark2: 68, Mark3: 62, Mark4: 66, Mark5: 64},
		{Roll: 105, Name: "Vikram Reddy", Age: 22, Branch: "Civil", Mark1: 55, Mark2: 58, Mark3: 52, Mark4: 56, Mark5: 54},
		{Roll: 106, Name: "Anjali Desai", Age: 20, Branch: "Computer Science", Mark1: 98, Mark2: 96, Mark3: 99, Mark4: 97, Mark5: 98},
		{Roll: 107, Name: "Rahul Verma", Age: 21, Branch: "Electronics", Mark1: 88, Mark2: 85, Mark3: 90, Mark4: 87, Mark5: 89},
		{Roll: 108, Name: "Kavya Nair", Age: 19, Branch: "Mechanical", Mark1: 78, Mark2: 80, Mark3: 75, Mark4: 79, Mark5: 77},
		{Roll: 109, Name: "Arjun Menon", Age: 20, Branch: "Computer Science", Mark1: 92, Mark2: 94, Mark3: 91, Mark4: 93, Mark5: 95},
		{Roll: 110, Name: "Meera Iyer", Age: 21, Branch: "Electronics", Mark1: 82, Mark2: 84, Mark3: 80, Mark4: 83, Mark5: 81},
	}
}
