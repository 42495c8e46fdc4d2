package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
)

type recordRepository struct {
	db *recordTable
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *DB) *recordRepository {
	return &recordRepository{db: db.records}
}

func (repo *recordRepository) query(studentID int) []record.AcademicRecord {
	recs := make([]record.AcademicRecord, 0)
	for _, rec := range repo.db.table {
		if rec.StudentID == studentID {
			recs = append(recs, *rec)
		}
	}
	return recs
}

func (repo *recordRepository) GetRecord(_ context.Context, studentID int, scope record.Scope) (record.AcademicRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.table {
		if rec.StudentID == studentID && rec.TermScope() == scope {
			return *rec, nil
		}
	}
	return record.AcademicRecord{}, record.ErrNotFound
}

func (repo *recordRepository) SaveRecord(_ context.Context, rec record.AcademicRecord) (record.SyncResult, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	res := record.SyncCreated
	for _, existing := range repo.db.table {
		if existing.StudentID == rec.StudentID && existing.TermScope() == rec.TermScope() {
			res = record.SyncUpdated
			existing.TotalCredits = rec.TotalCredits
			existing.SGPA = rec.SGPA
			existing.CGPA = rec.CGPA
			existing.UpdatedAt = rec.UpdatedAt
			rec.ID = existing.ID
			break
		}
	}
	if res == record.SyncCreated {
		repo.db.nextPK++
		rec.ID = repo.db.nextPK
		saved := rec
		repo.db.table[rec.ID] = &saved
	}

	// cascade; sibling UpdatedAt stays put so LatestRecord tracks the last
	// synchronized term
	for _, existing := range repo.db.table {
		if existing.StudentID == rec.StudentID && existing.ID != rec.ID {
			existing.CGPA = rec.CGPA
		}
	}
	return res, nil
}

func fieldValue(rec record.AcademicRecord, field string) int64 {
	switch field {
	case "id":
		return int64(rec.ID)
	case "academic_year":
		return int64(rec.AcademicYear)
	case "year_of_study":
		return int64(rec.YearOfStudy)
	case "semester":
		return int64(rec.Semester)
	case "total_credits":
		return int64(rec.TotalCredits)
	case "updated_at":
		return rec.UpdatedAt.UnixNano()
	case "created_at":
		return rec.CreatedAt.UnixNano()
	default:
		return 0
	}
}

func (repo *recordRepository) QueryStudentRecords(_ context.Context, studentID int, ordering []core.DBOrdering) ([]record.AcademicRecord, error) {
	repo.db.RLock()
	recs := repo.query(studentID)
	repo.db.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		for _, ord := range ordering {
			vi, vj := fieldValue(recs[i], ord.Field), fieldValue(recs[j], ord.Field)
			if vi == vj {
				continue
			}
			if ord.Ascending {
				return vi < vj
			}
			return vi > vj
		}
		return recs[i].ID < recs[j].ID
	})
	return recs, nil
}

func (repo *recordRepository) LatestRecord(_ context.Context, studentID int) (record.AcademicRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest *record.AcademicRecord
	var latestAt time.Time
	for _, rec := range repo.db.table {
		if rec.StudentID != studentID {
			continue
		}
		if latest == nil || rec.UpdatedAt.After(latestAt) ||
			(rec.UpdatedAt.Equal(latestAt) && rec.ID > latest.ID) {
			latest = rec
			latestAt = rec.UpdatedAt
		}
	}
	if latest == nil {
		return record.AcademicRecord{}, record.ErrNotFound
	}
	return *latest, nil
}
