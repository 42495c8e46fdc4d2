package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
)

const recordColumns = "id, student_id, academic_year, year_of_study, semester, total_credits, sgpa, cgpa, created_at, updated_at"

type recordRepository struct {
	db core.DB
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db core.DB) *recordRepository {
	return &recordRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to record.ErrNotFound
func (repo recordRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return record.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo recordRepository) GetRecord(ctx context.Context, studentID int, scope record.Scope) (record.AcademicRecord, error) {
	var rec record.AcademicRecord
	err := repo.db.GetContext(ctx, &rec,
		"SELECT "+recordColumns+" FROM academic_records "+
			"WHERE student_id = $1 AND academic_year = $2 AND year_of_study = $3 AND semester = $4",
		studentID, scope.AcademicYear, scope.YearOfStudy, scope.Semester,
	)
	if err != nil {
		return record.AcademicRecord{}, repo.trapNoRowsErr(err, "getting academic record")
	}
	return rec, nil
}

// SaveRecord upserts the term row and cascades the CGPA to the student's
// other rows in a single transaction. pg_advisory_xact_lock serialises
// concurrent synchronize runs for the same student across processes; the
// lock is released with the transaction.
func (repo recordRepository) SaveRecord(ctx context.Context, rec record.AcademicRecord) (record.SyncResult, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", int64(rec.StudentID)); err != nil {
		return "", errors.Wrap(err, "locking student records")
	}

	res := record.SyncUpdated
	var id int
	err = tx.GetContext(ctx, &id,
		"SELECT id FROM academic_records "+
			"WHERE student_id = $1 AND academic_year = $2 AND year_of_study = $3 AND semester = $4 FOR UPDATE",
		rec.StudentID, rec.AcademicYear, rec.YearOfStudy, rec.Semester,
	)
	switch {
	case err == sql.ErrNoRows:
		res = record.SyncCreated
		err = tx.GetContext(ctx, &rec.ID,
			"INSERT INTO academic_records "+
				"(student_id, academic_year, year_of_study, semester, total_credits, sgpa, cgpa, created_at, updated_at) "+
				"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id",
			rec.StudentID, rec.AcademicYear, rec.YearOfStudy, rec.Semester,
			rec.TotalCredits, rec.SGPA, rec.CGPA, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return "", errors.Wrap(err, "inserting academic record")
		}
	case err != nil:
		return "", errors.Wrap(err, "checking academic record")
	default:
		rec.ID = id
		_, err = tx.ExecContext(ctx,
			"UPDATE academic_records SET total_credits = $1, sgpa = $2, cgpa = $3, updated_at = $4 WHERE id = $5",
			rec.TotalCredits, rec.SGPA, rec.CGPA, rec.UpdatedAt, rec.ID,
		)
		if err != nil {
			return "", errors.Wrap(err, "updating academic record")
		}
	}

	// cascade: every row of the student reflects the current overall CGPA.
	// updated_at is deliberately left alone so "latest record" keeps tracking
	// the last synchronized term.
	_, err = tx.ExecContext(ctx,
		"UPDATE academic_records SET cgpa = $1 WHERE student_id = $2 AND id <> $3",
		rec.CGPA, rec.StudentID, rec.ID,
	)
	if err != nil {
		return "", errors.Wrap(err, "cascading cgpa")
	}

	if err = tx.Commit(); err != nil {
		return "", errors.Wrap(err, "committing academic record")
	}
	return res, nil
}

func (repo recordRepository) QueryStudentRecords(ctx context.Context, studentID int, ordering []core.DBOrdering) ([]record.AcademicRecord, error) {
	q := "SELECT " + recordColumns + " FROM academic_records WHERE student_id = $1"
	if len(ordering) > 0 {
		clauses := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			clauses = append(clauses, ord.String())
		}
		q += " ORDER BY " + strings.Join(clauses, ", ")
	}

	recs := make([]record.AcademicRecord, 0)
	if err := repo.db.SelectContext(ctx, &recs, q, studentID); err != nil {
		return nil, errors.Wrap(err, "querying academic records")
	}
	return recs, nil
}

func (repo recordRepository) LatestRecord(ctx context.Context, studentID int) (record.AcademicRecord, error) {
	var rec record.AcademicRecord
	err := repo.db.GetContext(ctx, &rec,
		"SELECT "+recordColumns+" FROM academic_records WHERE student_id = $1 ORDER BY updated_at DESC, id DESC LIMIT 1",
		studentID,
	)
	if err != nil {
		return record.AcademicRecord{}, repo.trapNoRowsErr(err, "getting latest academic record")
	}
	return rec, nil
}
