package main

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
	inmemdb "github.com/rekodihq/rekodi/storage/database/inmem"
)

var recRepo record.Repository

func setup(t *testing.T) (*commandLine, *inmemdb.DB) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	recRepo = inmemdb.NewRecordRepository(db)

	cli := &commandLine{
		db: new(sqlx.DB), // migrations are mocked; never dialed
		recordSvc: record.NewService(
			nil,
			recRepo,
			inmemdb.NewEnrollmentRepository(db),
			inmemdb.NewGradeRepository(db),
			inmemdb.NewOfferingRepository(db),
		),
		studentSvc: student.NewService(inmemdb.NewStudentRepository(db)),
	}
	return cli, db
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version", "fix": // pass
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resync(t *testing.T) {
	cli, db := setup(t)

	std := db.AddStudent("CS-020-24", "Gloria Tshala")
	scope := record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 1}
	db.SetGrade(db.Enroll(std.ID, db.AddOffering(3, scope)).ID, "B")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resync"}, wantErr: errHelp},
		{name: "student not found", args: []string{"resync", "-idno", "lol", "-year", "2024", "-study-year", "1", "-semester", "1"}, wantErr: student.ErrNotFound},
		{
			name: "term with no courses is a noop",
			args: []string{"resync", "-idno", "cs-020-24", "-year", "2024", "-study-year", "1", "-semester", "2"},
		},
		{
			name: "resync persists the record",
			args: []string{"resync", "-idno", "CS-020-24", "-year", "2024", "-study-year", "1", "-semester", "1"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	rec, err := recRepo.GetRecord(context.Background(), std.ID, scope)
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if rec.SGPA != 3 || rec.TotalCredits != 3 {
		t.Errorf("persisted record = %+v, want SGPA 3 over 3 credits", rec)
	}

	// the noop run must not have materialised a row for the empty term
	if _, err = recRepo.GetRecord(context.Background(), std.ID, record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 2}); err != record.ErrNotFound {
		t.Errorf("GetRecord() on the empty term: error = %v, want %v", err, record.ErrNotFound)
	}
}

func Test_commandLine_resync_invalidTerm(t *testing.T) {
	cli, db := setup(t)
	db.AddStudent("CS-021-24", "Trésor Mutombo")

	err := cli.run([]string{"admin", "resync", "-idno", "cs-021-24", "-year", "1565", "-study-year", "1", "-semester", "1"})
	if err == nil {
		t.Error("cli.run() accepted an out-of-range academic year")
	}
}
