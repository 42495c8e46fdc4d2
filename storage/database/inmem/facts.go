package inmemdb

import (
	"context"
	"sort"

	"github.com/rekodihq/rekodi/core/record"
)

type enrollmentRepository struct {
	db        *enrollmentTable
	offerings *offeringTable
}

var _ record.EnrollmentSource = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db.enrollments, offerings: db.offerings}
}

func (repo *enrollmentRepository) EnrollmentsForStudent(_ context.Context, studentID int) ([]record.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrs := make([]record.Enrollment, 0)
	for _, enr := range repo.db.table {
		if enr.StudentID == studentID {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].ID < enrs[j].ID })
	return enrs, nil
}

func (repo *enrollmentRepository) EnrollmentsForScope(_ context.Context, studentID int, scope record.Scope) ([]record.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.offerings.RLock()
	defer repo.offerings.RUnlock()

	enrs := make([]record.Enrollment, 0)
	for _, enr := range repo.db.table {
		if enr.StudentID != studentID {
			continue
		}
		// exact scope equality only; no fuzzy matching across terms
		if off, ok := repo.offerings.table[enr.OfferingID]; ok && off.Scope == scope {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].ID < enrs[j].ID })
	return enrs, nil
}

type gradeRepository struct {
	db          *gradeTable
	enrollments *enrollmentTable
}

var _ record.GradeSource = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db.grades, enrollments: db.enrollments}
}

func (repo *gradeRepository) GradeForEnrollment(_ context.Context, enrollmentID int) (string, error) {
	repo.enrollments.RLock()
	_, enrolled := repo.enrollments.table[enrollmentID]
	repo.enrollments.RUnlock()
	if !enrolled {
		return "", record.ErrEnrollmentNotFound
	}

	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.table[enrollmentID], nil // "" when enrolled but ungraded
}

type offeringRepository struct {
	db *offeringTable
}

var _ record.OfferingSource = (*offeringRepository)(nil) // interface compliance check

func NewOfferingRepository(db *DB) *offeringRepository {
	return &offeringRepository{db: db.offerings}
}

func (repo *offeringRepository) CreditsForOffering(_ context.Context, offeringID int) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if off, ok := repo.db.table[offeringID]; ok {
		return off.Credits, nil
	}
	return 0, record.ErrOfferingNotFound
}

func (repo *offeringRepository) ScopeForOffering(_ context.Context, offeringID int) (record.Scope, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if off, ok := repo.db.table[offeringID]; ok {
		return off.Scope, nil
	}
	return record.Scope{}, record.ErrOfferingNotFound
}
