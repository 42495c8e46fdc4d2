package record

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/rekodihq/rekodi/core"
)

// Service derives SGPA/CGPA figures from raw enrollment facts and keeps the
// persisted academic records in sync with them. It only reads through the
// fact sources; the record table is the single thing it writes.
type Service struct {
	log         core.Logger
	records     Repository
	enrollments EnrollmentSource
	grades      GradeSource
	offerings   OfferingSource
	locks       *studentLocks
}

func NewService(log core.Logger, records Repository, enrollments EnrollmentSource, grades GradeSource, offerings OfferingSource) *Service {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Service{
		log:         log,
		records:     records,
		enrollments: enrollments,
		grades:      grades,
		offerings:   offerings,
		locks:       newStudentLocks(),
	}
}

// courseLoads resolves enrollments to (credits, grade) pairs through the
// per-entity read sources.
func (svc *Service) courseLoads(ctx context.Context, enrs []Enrollment) ([]CourseLoad, error) {
	loads := make([]CourseLoad, 0, len(enrs))
	for _, enr := range enrs {
		credits, err := svc.offerings.CreditsForOffering(ctx, enr.OfferingID)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving credits for offering %d", enr.OfferingID)
		}
		grade, err := svc.grades.GradeForEnrollment(ctx, enr.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving grade for enrollment %d", enr.ID)
		}
		loads = append(loads, CourseLoad{Credits: credits, Grade: grade})
	}
	return loads, nil
}

// SGPAFor computes the semester GPA and credit total for one term of a
// student. Enrollments are matched by exact scope equality.
func (svc *Service) SGPAFor(ctx context.Context, studentID int, scope Scope) (float64, int, error) {
	req := SyncRequest{
		StudentID:    studentID,
		AcademicYear: scope.AcademicYear,
		YearOfStudy:  scope.YearOfStudy,
		Semester:     scope.Semester,
	}
	if err := req.Validate(); err != nil {
		return 0, 0, err
	}
	return svc.sgpaFor(ctx, studentID, scope)
}

func (svc *Service) sgpaFor(ctx context.Context, studentID int, scope Scope) (float64, int, error) {
	enrs, err := svc.enrollments.EnrollmentsForScope(ctx, studentID, scope)
	if err != nil {
		return 0, 0, errors.Wrap(err, "querying term enrollments")
	}
	loads, err := svc.courseLoads(ctx, enrs)
	if err != nil {
		return 0, 0, err
	}
	sgpa, credits := WeightedAverage(loads)
	return sgpa, credits, nil
}

// CGPAFor computes the cumulative GPA over the student's entire enrollment
// history. It is always rederived from raw facts - never from stored SGPAs -
// so a historical grade edit can never leave it stale.
func (svc *Service) CGPAFor(ctx context.Context, studentID int) (float64, error) {
	enrs, err := svc.enrollments.EnrollmentsForStudent(ctx, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "querying student enrollments")
	}
	loads, err := svc.courseLoads(ctx, enrs)
	if err != nil {
		return 0, err
	}
	cgpa, _ := WeightedAverage(loads)
	return cgpa, nil
}

// Synchronize recomputes and persists the academic record of the requested
// term, then propagates the student's fresh CGPA to every other persisted
// record of that student. The whole run holds the student's lock; runs for
// different students proceed in parallel.
//
// StudentID must reference an existing student; callers resolve it first
// (student.Service.ResolveID). The engine reads enrollments only, so an
// unknown id is indistinguishable from a student with no courses and comes
// back as SyncNoop.
func (svc *Service) Synchronize(ctx context.Context, req SyncRequest) (SyncResult, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	svc.locks.lock(req.StudentID)
	defer svc.locks.unlock(req.StudentID)

	scope := req.Scope()
	sgpa, credits, err := svc.sgpaFor(ctx, req.StudentID, scope)
	if err != nil {
		return "", err
	}
	if credits == 0 {
		// term with no enrolled courses: never materialise a zero row,
		// leave any existing record untouched
		return SyncNoop, nil
	}

	cgpa, err := svc.CGPAFor(ctx, req.StudentID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	rec := AcademicRecord{
		StudentID:    req.StudentID,
		AcademicYear: scope.AcademicYear,
		YearOfStudy:  scope.YearOfStudy,
		Semester:     scope.Semester,
		TotalCredits: credits,
		SGPA:         sgpa,
		CGPA:         cgpa,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	res, err := svc.records.SaveRecord(ctx, rec)
	if err != nil {
		return "", errors.Wrap(err, "saving academic record")
	}

	svc.log.Debug("academic record synchronized",
		map[string]interface{}{"student": req.StudentID, "scope": scope, "result": res})
	return res, nil
}

// ListRecords returns all academic records of the student in stable
// chronological order for transcript rendering.
func (svc *Service) ListRecords(ctx context.Context, studentID int) ([]AcademicRecord, error) {
	return svc.records.QueryStudentRecords(ctx, studentID, []core.DBOrdering{
		{Field: "academic_year", Ascending: true},
		{Field: "year_of_study", Ascending: true},
		{Field: "semester", Ascending: true},
	})
}

// LatestCGPA returns the CGPA carried by the student's most recently touched
// record, or 0 when no record exists yet.
func (svc *Service) LatestCGPA(ctx context.Context, studentID int) (float64, error) {
	rec, err := svc.records.LatestRecord(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return rec.CGPA, nil
}
