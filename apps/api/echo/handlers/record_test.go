package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rekodihq/rekodi/apps/api/echo/helpers"
	"github.com/rekodihq/rekodi/core/record"
	"github.com/rekodihq/rekodi/core/student"
	inmemdb "github.com/rekodihq/rekodi/storage/database/inmem"
)

func setup(t *testing.T) (*echo.Echo, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	recordSvc := record.NewService(
		nil,
		inmemdb.NewRecordRepository(db),
		inmemdb.NewEnrollmentRepository(db),
		inmemdb.NewGradeRepository(db),
		inmemdb.NewOfferingRepository(db),
	)
	studentSvc := student.NewService(inmemdb.NewStudentRepository(db))

	e := echo.New()
	e.HTTPErrorHandler = helpers.AppHTTPErrorHandler
	RegisterRecordAPI(e.Group("/v1"), recordSvc, studentSvc)
	return e, db
}

func request(e *echo.Echo, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func syncBody(t *testing.T, idNo string, year, studyYear, semester int) []byte {
	data, err := json.Marshal(SyncRecordRequest{
		IDNo:         idNo,
		AcademicYear: year,
		YearOfStudy:  studyYear,
		Semester:     semester,
	})
	if err != nil {
		t.Fatalf("syncBody() failed: %v", err)
	}
	return data
}

func Test_recordApi_recordSync(t *testing.T) {
	e, db := setup(t)
	std := db.AddStudent("CS-010-24", "Sarah Mbuyi")
	scope := record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 1}
	db.SetGrade(db.Enroll(std.ID, db.AddOffering(3, scope)).ID, "A")

	// first sync creates
	rec := request(e, http.MethodPost, "/v1/records/sync", syncBody(t, "CS-010-24", 2024, 1, 1))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"result": "created"}`, rec.Body.String())

	// rerun updates
	rec = request(e, http.MethodPost, "/v1/records/sync", syncBody(t, "cs-010-24", 2024, 1, 1))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result": "updated"}`, rec.Body.String())

	// a term with no enrollments is reported, not failed
	rec = request(e, http.MethodPost, "/v1/records/sync", syncBody(t, "cs-010-24", 2024, 1, 2))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result": "noop"}`, rec.Body.String())
}

func Test_recordApi_recordSync_errors(t *testing.T) {
	e, db := setup(t)
	db.AddStudent("CS-011-24", "Moses Banda")

	tests := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{name: "unknown student", body: syncBody(t, "cs-404-24", 2024, 1, 1), wantCode: http.StatusNotFound},
		{name: "missing id_no", body: syncBody(t, "", 2024, 1, 1), wantCode: http.StatusBadRequest},
		{name: "year out of range", body: syncBody(t, "cs-011-24", 1565, 1, 1), wantCode: http.StatusBadRequest},
		{name: "bad semester", body: syncBody(t, "cs-011-24", 2024, 1, 3), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(e, http.MethodPost, "/v1/records/sync", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func Test_recordApi_studentRecords(t *testing.T) {
	e, db := setup(t)
	std := db.AddStudent("CS-012-24", "Chantal Ngalula")

	term1 := record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 1}
	term2 := record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 2}
	db.SetGrade(db.Enroll(std.ID, db.AddOffering(3, term1)).ID, "A")
	db.SetGrade(db.Enroll(std.ID, db.AddOffering(3, term2)).ID, "C")
	for _, sem := range []int{1, 2} {
		rec := request(e, http.MethodPost, "/v1/records/sync", syncBody(t, "cs-012-24", 2024, 1, sem))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := request(e, http.MethodGet, "/v1/students/cs-012-24/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var recs []record.AcademicRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, term1, recs[0].TermScope())
	assert.Equal(t, term2, recs[1].TermScope())
	assert.Equal(t, 4.0, recs[0].SGPA)
	assert.Equal(t, 2.0, recs[1].SGPA)
	// both rows carry the current overall standing
	assert.Equal(t, 3.0, recs[0].CGPA)
	assert.Equal(t, 3.0, recs[1].CGPA)

	rec = request(e, http.MethodGet, "/v1/students/cs-404-24/records", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "student not found"}`, rec.Body.String())

	// a blank registration number is a field error, not a lookup miss
	rec = request(e, http.MethodGet, "/v1/students/%20/records", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"id_no": "this field is required"}`, rec.Body.String())
}

func Test_recordApi_studentCGPA(t *testing.T) {
	e, db := setup(t)
	std := db.AddStudent("CS-013-24", "Fiston Kazadi")

	// no record yet reads as 0
	rec := request(e, http.MethodGet, "/v1/students/cs-013-24/cgpa", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cgpa": 0}`, rec.Body.String())

	scope := record.Scope{AcademicYear: 2024, YearOfStudy: 1, Semester: 1}
	db.SetGrade(db.Enroll(std.ID, db.AddOffering(3, scope)).ID, "B+")
	require.Equal(t, http.StatusCreated,
		request(e, http.MethodPost, "/v1/records/sync", syncBody(t, "cs-013-24", 2024, 1, 1)).Code)

	rec = request(e, http.MethodGet, "/v1/students/cs-013-24/cgpa", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cgpa": 3.5}`, rec.Body.String())
}

func Test_recordApi_recordGradeScale(t *testing.T) {
	e, _ := setup(t)

	rec := request(e, http.MethodGet, "/v1/records/grade-scale", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var scale []record.GradePoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scale))
	require.Len(t, scale, 11)
	assert.Equal(t, "A+", scale[0].Letter)
	assert.Equal(t, "F", scale[10].Letter)
	assert.True(t, scale[0].Points.Equal(record.GradePoints("A")))
}
