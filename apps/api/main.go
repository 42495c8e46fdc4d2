package main

import (
	"log"
	"os"

	echoapi "github.com/rekodihq/rekodi/apps/api/echo"
	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
	logsvc "github.com/rekodihq/rekodi/services/logger"
	"github.com/rekodihq/rekodi/storage/database"
	sqlxrepos "github.com/rekodihq/rekodi/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up DB; local runs bootstrap their own database
	if core.Conf.Debug {
		if err := database.CreateIfNotExist(core.Conf); err != nil {
			logger.Fatal("creating database", err)
		}
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer db.Close()
	if err = db.Ping(); err != nil {
		logger.Fatal("pinging database", err)
	}
	if core.Conf.Debug {
		if err = database.Migrate(db); err != nil {
			logger.Fatal("migrating database", err)
		}
	}

	// set up services
	recordSvc := record.NewService(
		logger,
		sqlxrepos.NewRecordRepository(db),
		sqlxrepos.NewEnrollmentRepository(db),
		sqlxrepos.NewGradeRepository(db),
		sqlxrepos.NewOfferingRepository(db),
	)
	studentSvc := student.NewService(sqlxrepos.NewStudentRepository(db))

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:    core.Conf.Address(),
			RecordSvc:  recordSvc,
			StudentSvc: studentSvc,
		},
	)
	app.Start()
}
