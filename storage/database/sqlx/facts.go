package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
)

// Read-only sources over the raw enrollment/grade/course facts. These tables
// are owned by the CRUD collaborators; the engine never writes them.

type enrollmentRepository struct {
	db core.DB
}

var _ record.EnrollmentSource = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db core.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) EnrollmentsForStudent(ctx context.Context, studentID int) ([]record.Enrollment, error) {
	enrs := make([]record.Enrollment, 0)
	err := repo.db.SelectContext(ctx, &enrs,
		"SELECT id, student_id, offering_id FROM enrollments WHERE student_id = $1 ORDER BY id",
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying student enrollments")
	}
	return enrs, nil
}

func (repo enrollmentRepository) EnrollmentsForScope(ctx context.Context, studentID int, scope record.Scope) ([]record.Enrollment, error) {
	enrs := make([]record.Enrollment, 0)
	err := repo.db.SelectContext(ctx, &enrs,
		"SELECT e.id, e.student_id, e.offering_id FROM enrollments e "+
			"JOIN course_offerings o ON o.id = e.offering_id "+
			"JOIN courses c ON c.id = o.course_id "+
			"WHERE e.student_id = $1 AND c.academic_year = $2 AND c.year_of_study = $3 AND c.semester = $4 "+
			"ORDER BY e.id",
		studentID, scope.AcademicYear, scope.YearOfStudy, scope.Semester,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying term enrollments")
	}
	return enrs, nil
}

type gradeRepository struct {
	db core.DB
}

var _ record.GradeSource = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db core.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) GradeForEnrollment(ctx context.Context, enrollmentID int) (string, error) {
	// LEFT JOIN so "enrolled but ungraded" (NULL letter) stays distinct from
	// "no such enrollment" (no rows).
	var letter null.String
	err := repo.db.GetContext(ctx, &letter,
		"SELECT g.letter FROM enrollments e LEFT JOIN grades g ON g.enrollment_id = e.id WHERE e.id = $1",
		enrollmentID,
	)
	if err == sql.ErrNoRows {
		return "", record.ErrEnrollmentNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "getting enrollment grade")
	}
	return letter.String, nil
}

type offeringRepository struct {
	db core.DB
}

var _ record.OfferingSource = (*offeringRepository)(nil) // interface compliance check

func NewOfferingRepository(db core.DB) *offeringRepository {
	return &offeringRepository{db: db}
}

func (repo offeringRepository) CreditsForOffering(ctx context.Context, offeringID int) (int, error) {
	var credits int
	err := repo.db.GetContext(ctx, &credits,
		"SELECT c.credits FROM course_offerings o JOIN courses c ON c.id = o.course_id WHERE o.id = $1",
		offeringID,
	)
	if err == sql.ErrNoRows {
		return 0, record.ErrOfferingNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "getting offering credits")
	}
	return credits, nil
}

func (repo offeringRepository) ScopeForOffering(ctx context.Context, offeringID int) (record.Scope, error) {
	var scope record.Scope
	err := repo.db.GetContext(ctx, &scope,
		"SELECT c.academic_year, c.year_of_study, c.semester "+
			"FROM course_offerings o JOIN courses c ON c.id = o.course_id WHERE o.id = $1",
		offeringID,
	)
	if err == sql.ErrNoRows {
		return record.Scope{}, record.ErrOfferingNotFound
	}
	if err != nil {
		return record.Scope{}, errors.Wrap(err, "getting offering scope")
	}
	return scope, nil
}
