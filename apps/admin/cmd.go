package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sqlx.DB
	recordSvc  *record.Service
	studentSvc *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  resync -idno IDNO -year YEAR -study-year YEAR_OF_STUDY -semester SEMESTER - recompute a student's academic record")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resyncCmd := flag.NewFlagSet("resync", flag.ExitOnError)
	resyncIDNo := resyncCmd.String("idno", "", "The student's registration number.")
	resyncYear := resyncCmd.Int("year", 0, "The academic year, eg. 2024.")
	resyncStudyYear := resyncCmd.Int("study-year", 0, "The student's year of study (1-9).")
	resyncSemester := resyncCmd.Int("semester", 0, "The semester (1 or 2).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "resync":
		if err := resyncCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resyncIDNo == "" {
			resyncCmd.Usage()
			return errHelp
		}
		return cli.resync(*resyncIDNo, *resyncYear, *resyncStudyYear, *resyncSemester)
	default:
		cli.printUsage()
		return errHelp
	}
}
