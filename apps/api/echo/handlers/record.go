package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
)

type recordApi struct {
	recordSvc  *record.Service
	studentSvc *student.Service
}

func RegisterRecordAPI(g *echo.Group, recordSvc *record.Service, studentSvc *student.Service) {
	api := recordApi{recordSvc: recordSvc, studentSvc: studentSvc}

	rg := g.Group("/records")
	rg.POST("/sync", api.recordSync) // invoked by enrollment/grade screens after each mutation
	rg.GET("/grade-scale", api.recordGradeScale)

	sg := g.Group("/students/:idno")
	sg.GET("/records", api.studentRecords)
	sg.GET("/cgpa", api.studentCGPA)
}

// SyncRecordRequest identifies the student by registration number; term
// bounds are enforced by record.SyncRequest inside the service.
type SyncRecordRequest struct {
	IDNo         string `json:"id_no" validate:"required"`
	AcademicYear int    `json:"academic_year"`
	YearOfStudy  int    `json:"year_of_study"`
	Semester     int    `json:"semester"`
}

func (r *SyncRecordRequest) Validate() error {
	r.IDNo = core.CleanString(r.IDNo, true /* lower */)
	return core.Validate.Struct(r)
}

type SyncRecordResponse struct {
	Result record.SyncResult `json:"result"`
}

type CGPAResponse struct {
	CGPA float64 `json:"cgpa"`
}

// Handlers

func (api *recordApi) recordSync(ctx echo.Context) error {
	data := new(SyncRecordRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	studentID, err := api.studentSvc.ResolveID(reqCtx, data.IDNo)
	if err != nil {
		return err
	}

	res, err := api.recordSvc.Synchronize(reqCtx, record.SyncRequest{
		StudentID:    studentID,
		AcademicYear: data.AcademicYear,
		YearOfStudy:  data.YearOfStudy,
		Semester:     data.Semester,
	})
	if err != nil {
		return err
	}

	code := http.StatusOK
	if res == record.SyncCreated {
		code = http.StatusCreated
	}
	return ctx.JSON(code, SyncRecordResponse{Result: res})
}

func (api *recordApi) studentRecords(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	studentID, err := api.studentSvc.ResolveID(reqCtx, ctx.Param("idno"))
	if err != nil {
		return err
	}

	recs, err := api.recordSvc.ListRecords(reqCtx, studentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *recordApi) studentCGPA(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	studentID, err := api.studentSvc.ResolveID(reqCtx, ctx.Param("idno"))
	if err != nil {
		return err
	}

	cgpa, err := api.recordSvc.LatestCGPA(reqCtx, studentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CGPAResponse{CGPA: cgpa})
}

func (api *recordApi) recordGradeScale(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, record.GradeScale())
}
