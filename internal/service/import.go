package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"studentrecords/internal/model"
	"studentrecords/internal/repository"
)

var markColumns = []string{"mark1", "mark2", "mark3", "mark4", "mark5"}

// Import reads students from CSV and inserts all of them in one
// transaction. The first row is a header naming the columns; only roll is
// required. Any bad row or duplicate roll aborts the whole import.
func (s *StudentService) Import(ctx context.Context, r io.Reader) (int, error) {
	startTime := time.Now()

	students, err := parseCSV(r)
	if err != nil {
		return 0, err
	}

	err = s.repo.Transaction(ctx, func(repo repository.StudentRepository) error {
		for i := range students {
			if err := repo.Create(ctx, &students[i]); err != nil {
				return fmt.Errorf("roll %d: %w", students[i].Roll, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithField("count", len(students)).
		WithField("elapsed", time.Since(startTime).String()).
		Info("imported students from csv")
	return len(students), nil
}

func parseCSV(r io.Reader) ([]model.Student, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, model.NewValidationError("CSV is empty")
	}
	if err != nil {
		return nil, model.NewValidationError("invalid CSV header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		index[name] = i
	}
	if _, ok := index["roll"]; !ok {
		return nil, model.NewValidationError("CSV header must contain a roll column")
	}

	var students []model.Student
	seen := make(map[int]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, model.NewValidationError("invalid CSV: %v", err)
		}
		line, _ := reader.FieldPos(0)

		req, err := rowToRequest(record, index)
		if err != nil {
			return nil, model.NewValidationError("line %d: %v", line, err)
		}
		if err := req.Validate(); err != nil {
			return nil, model.NewValidationError("line %d: %v", line, err)
		}

		student := req.ToModel()
		student.Normalize()
		if first, dup := seen[student.Roll]; dup {
			return nil, fmt.Errorf("line %d: roll %d repeats line %d: %w", line, student.Roll, first, model.ErrDuplicateKey)
		}
		seen[student.Roll] = line
		students = append(students, student)
	}

	if len(students) == 0 {
		return nil, model.NewValidationError("CSV contains no records")
	}
	return students, nil
}

func rowToRequest(record []string, index map[string]int) (*model.CreateStudentRequest, error) {
	value := func(column string) (string, bool) {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return "", false
		}
		v := strings.TrimSpace(record[i])
		return v, v != ""
	}

	req := &model.CreateStudentRequest{}
	if v, ok := value("roll"); ok {
		roll, err := model.ParseInt(v)
		if err != nil {
			return nil, err
		}
		req.Roll = &roll
	}
	if v, ok := value("name"); ok {
		req.Name = &v
	}
	if v, ok := value("age"); ok {
		age, err := model.ParseInt(v)
		if err != nil {
			return nil, err
		}
		req.Age = &age
	}
	if v, ok := value("branch"); ok {
		req.Branch = &v
	}

	marks := []**model.FlexFloat{&req.Mark1, &req.Mark2, &req.Mark3, &req.Mark4, &req.Mark5}
	for i, column := range markColumns {
		v, ok := value(column)
		if !ok {
			continue
		}
		mark, err := model.ParseFloat(v)
		if err != nil {
			return nil, err
		}
		*marks[i] = &mark
	}
	return req, nil
}
