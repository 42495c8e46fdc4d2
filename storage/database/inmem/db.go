package inmemdb

import (
	"sync"
	"time"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
)

// In-memory stand-in for the Postgres storage; used by tests and local dev.

type (
	DB struct {
		students    *studentTable
		offerings   *offeringTable
		enrollments *enrollmentTable
		grades      *gradeTable
		records     *recordTable
	}

	studentTable struct {
		sync.RWMutex
		nextPK int
		table  map[int]*student.Student
	}

	// offering flattens course_offerings + courses: the engine only ever
	// reads credits and the term scope through an offering.
	offering struct {
		ID      int
		Credits int
		Scope   record.Scope
	}

	offeringTable struct {
		sync.RWMutex
		nextPK int
		table  map[int]*offering
	}

	enrollmentTable struct {
		sync.RWMutex
		nextPK int
		table  map[int]*record.Enrollment
	}

	gradeTable struct {
		sync.RWMutex
		table map[int]string // letter by enrollment ID
	}

	recordTable struct {
		sync.RWMutex
		nextPK int
		table  map[int]*record.AcademicRecord
	}
)

func Open() (*DB, error) {
	db := &DB{
		students:    &studentTable{table: make(map[int]*student.Student)},
		offerings:   &offeringTable{table: make(map[int]*offering)},
		enrollments: &enrollmentTable{table: make(map[int]*record.Enrollment)},
		grades:      &gradeTable{table: make(map[int]string)},
		records:     &recordTable{table: make(map[int]*record.AcademicRecord)},
	}
	return db, nil
}

// Seeding helpers. The engine itself never writes facts; these exist so tests
// and local sandboxes can stand in for the enrollment/grade CRUD collaborators.

func (db *DB) AddStudent(idNo, name string) student.Student {
	db.students.Lock()
	defer db.students.Unlock()

	db.students.nextPK++
	now := time.Now().UTC()
	std := student.Student{
		ID:        db.students.nextPK,
		IDNo:      core.CleanString(idNo, true /* lower */),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.students.table[std.ID] = &std
	return std
}

func (db *DB) AddOffering(credits int, scope record.Scope) int {
	db.offerings.Lock()
	defer db.offerings.Unlock()

	db.offerings.nextPK++
	off := offering{ID: db.offerings.nextPK, Credits: credits, Scope: scope}
	db.offerings.table[off.ID] = &off
	return off.ID
}

func (db *DB) Enroll(studentID, offeringID int) record.Enrollment {
	db.enrollments.Lock()
	defer db.enrollments.Unlock()

	db.enrollments.nextPK++
	enr := record.Enrollment{ID: db.enrollments.nextPK, StudentID: studentID, OfferingID: offeringID}
	db.enrollments.table[enr.ID] = &enr
	return enr
}

func (db *DB) SetGrade(enrollmentID int, letter string) {
	db.grades.Lock()
	defer db.grades.Unlock()

	db.grades.table[enrollmentID] = letter
}
