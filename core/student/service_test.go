package student_test

import (
	"context"
	"testing"

	"github.com/rekodihq/rekodi/core"
	"github.com/rekodihq/rekodi/core/student"
	inmemdb "github.com/rekodihq/rekodi/storage/database/inmem"
)

func setup(t *testing.T) (*student.Service, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return student.NewService(inmemdb.NewStudentRepository(db)), db
}

func Test_Service_ResolveID(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	std := db.AddStudent("CS-042-23", "Henriette Kabila")

	tests := []struct {
		name    string
		idNo    string
		wantID  int
		wantErr error
	}{
		{name: "exact match", idNo: "cs-042-23", wantID: std.ID},
		{name: "case-insensitive", idNo: "CS-042-23", wantID: std.ID},
		{name: "surrounding whitespace", idNo: "  cs-042-23  ", wantID: std.ID},
		{name: "unknown", idNo: "cs-999-23", wantErr: student.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.ResolveID(ctx, tt.idNo)
			if err != tt.wantErr {
				t.Fatalf("ResolveID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("ResolveID() = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func Test_Service_ResolveID_blankIDNo(t *testing.T) {
	svc, _ := setup(t)

	for _, idNo := range []string{"", "   "} {
		_, err := svc.ResolveID(context.Background(), idNo)
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("ResolveID(%q) error = %T, want *core.ValidationError", idNo, err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "id_no" {
			t.Errorf("ResolveID(%q) fields = %+v, want one id_no field error", idNo, vErr.Fields)
		}
	}
}

func Test_Service_GetByID(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	std := db.AddStudent("CS-043-23", "Joël Ngoy")

	got, err := svc.GetByID(ctx, std.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.IDNo != "cs-043-23" || got.Name != std.Name {
		t.Errorf("GetByID() = %+v, want %+v", got, std)
	}

	if _, err = svc.GetByID(ctx, 404); err != student.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, student.ErrNotFound)
	}
}
