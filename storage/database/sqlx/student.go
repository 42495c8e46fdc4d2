package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/student"
)

const studentColumns = "id, id_no, name, created_at, updated_at"

type studentRepository struct {
	db core.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db core.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std,
		"SELECT "+studentColumns+" FROM students WHERE id = $1", id)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByIDNo(ctx context.Context, idNo string) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std,
		"SELECT "+studentColumns+" FROM students WHERE lower(id_no) = $1", core.CleanString(idNo, true /* lower */))
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student by registration number")
	}
	return std, nil
}
