package main

import (
	"log"
	"os"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
	logsvc "github.com/rekodihq/rekodi/services/logger"
	"github.com/rekodihq/rekodi/storage/database"
	sqlxrepos "github.com/rekodihq/rekodi/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	logSvc := logsvc.NewRollbarLogger(logger, core.Conf)
	logSvc.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db: db,
		recordSvc: record.NewService(
			logSvc,
			sqlxrepos.NewRecordRepository(db),
			sqlxrepos.NewEnrollmentRepository(db),
			sqlxrepos.NewGradeRepository(db),
			sqlxrepos.NewOfferingRepository(db),
		),
		studentSvc: student.NewService(sqlxrepos.NewStudentRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
