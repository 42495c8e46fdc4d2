package student

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("student not found")

// Student carries the identity fields the record engine needs; full student
// CRUD lives with outside collaborators.
type Student struct {
	ID        int       `json:"id" db:"id"`
	IDNo      string    `json:"id_no" db:"id_no"` // registration number shown on screens/reports
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Repository interface {
	GetStudentByID(ctx context.Context, id int) (Student, error)
	GetStudentByIDNo(ctx context.Context, idNo string) (Student, error)
}
