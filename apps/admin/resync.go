package main

import (
	"context"
	"fmt"

	"github.com/rekodihq/rekodi/core/record"
)

func (cli *commandLine) resync(idNo string, year, studyYear, semester int) error {
	ctx := context.Background()

	studentID, err := cli.studentSvc.ResolveID(ctx, idNo)
	if err != nil {
		return err
	}

	res, err := cli.recordSvc.Synchronize(ctx, record.SyncRequest{
		StudentID:    studentID,
		AcademicYear: year,
		YearOfStudy:  studyYear,
		Semester:     semester,
	})
	if err != nil {
		return err
	}

	// a noop is not a failure: the term simply has no enrolled courses
	if res == record.SyncNoop {
		fmt.Printf("no courses found for %s in %d/%d semester %d; nothing to update\n", idNo, year, studyYear, semester)
	} else {
		fmt.Printf("academic record %s for %s\n", res, idNo)
	}
	return nil
}
