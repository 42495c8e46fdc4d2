package inmemdb

import (
	"context"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.students}
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if id != 0 {
		if std, ok := repo.db.table[id]; ok {
			return *std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByIDNo(_ context.Context, idNo string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	idNo = core.CleanString(idNo, true /* lower */)
	if idNo != "" {
		for _, std := range repo.db.table {
			if std.IDNo == idNo {
				return *std, nil
			}
		}
	}
	return student.Student{}, student.ErrNotFound
}
