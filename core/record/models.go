package record

import (
	"context"
	"errors"
	"time"

	"github.com/rekodihq/rekodi/core"
)

var (
	// errors
	ErrNotFound           = errors.New("academic record not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrOfferingNotFound   = errors.New("course offering not found")
)

// SyncResult reports what Synchronize did for the requested term.
type SyncResult string

const (
	SyncCreated SyncResult = "created"
	SyncUpdated SyncResult = "updated"

	// SyncNoop means the student has no course enrollments in the requested
	// term; nothing was written. Callers must present this as "no courses
	// found", not as a failure.
	SyncNoop SyncResult = "noop"
)

// Scope identifies one academic term of a student's curriculum.
type Scope struct {
	AcademicYear int `json:"academic_year" db:"academic_year"`
	YearOfStudy  int `json:"year_of_study" db:"year_of_study"`
	Semester     int `json:"semester" db:"semester"`
}

// AcademicRecord is the persisted, derived summary of one student term.
// The engine owns TotalCredits, SGPA and CGPA exclusively; CGPA always holds
// the student's *current* overall standing regardless of the row's own term.
type AcademicRecord struct {
	ID           int       `json:"id" db:"id"`
	StudentID    int       `json:"student_id" db:"student_id"`
	AcademicYear int       `json:"academic_year" db:"academic_year"`
	YearOfStudy  int       `json:"year_of_study" db:"year_of_study"`
	Semester     int       `json:"semester" db:"semester"`
	TotalCredits int       `json:"total_credits" db:"total_credits"`
	SGPA         float64   `json:"sgpa" db:"sgpa"`
	CGPA         float64   `json:"cgpa" db:"cgpa"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (rec AcademicRecord) TermScope() Scope {
	return Scope{AcademicYear: rec.AcademicYear, YearOfStudy: rec.YearOfStudy, Semester: rec.Semester}
}

// Enrollment links a student to one course offering.
type Enrollment struct {
	ID         int `json:"id" db:"id"`
	StudentID  int `json:"student_id" db:"student_id"`
	OfferingID int `json:"offering_id" db:"offering_id"`
}

// CourseLoad is one enrolled course reduced to what grading needs: its credit
// weight and the letter grade awarded so far ("" while ungraded).
type CourseLoad struct {
	Credits int
	Grade   string
}

type (
	Repository interface {
		GetRecord(ctx context.Context, studentID int, scope Scope) (AcademicRecord, error)
		// SaveRecord upserts rec for its (student, term) key and overwrites
		// the CGPA of every other record of the same student. Both writes
		// happen in a single transaction; a failure leaves neither applied.
		SaveRecord(ctx context.Context, rec AcademicRecord) (SyncResult, error)
		QueryStudentRecords(ctx context.Context, studentID int, ordering []core.DBOrdering) ([]AcademicRecord, error)
		// LatestRecord returns the most recently touched record of the student.
		LatestRecord(ctx context.Context, studentID int) (AcademicRecord, error)
	}

	// EnrollmentSource, GradeSource and OfferingSource are the read-only
	// contracts over the raw facts. The engine never writes through them;
	// enrollment/grade CRUD belongs to outside collaborators.
	EnrollmentSource interface {
		EnrollmentsForStudent(ctx context.Context, studentID int) ([]Enrollment, error)
		EnrollmentsForScope(ctx context.Context, studentID int, scope Scope) ([]Enrollment, error)
	}

	GradeSource interface {
		// GradeForEnrollment returns "" when the enrollment exists but has
		// not been graded yet, and ErrEnrollmentNotFound when it does not.
		GradeForEnrollment(ctx context.Context, enrollmentID int) (string, error)
	}

	OfferingSource interface {
		CreditsForOffering(ctx context.Context, offeringID int) (int, error)
		ScopeForOffering(ctx context.Context, offeringID int) (Scope, error)
	}
)

// SyncRequest carries the term whose academic record must be recomputed.
type SyncRequest struct {
	StudentID    int `json:"student_id" validate:"required,min=1"`
	AcademicYear int `json:"academic_year" validate:"required,min=1900,max=2100"`
	YearOfStudy  int `json:"year_of_study" validate:"required,min=1,max=9"`
	Semester     int `json:"semester" validate:"required,oneof=1 2"`
}

func (sr SyncRequest) Validate() error { return core.Validate.Struct(sr) }

func (sr SyncRequest) Scope() Scope {
	return Scope{AcademicYear: sr.AcademicYear, YearOfStudy: sr.YearOfStudy, Semester: sr.Semester}
}
