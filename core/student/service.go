package student

import (
	"context"

	"github.com/rekodihq/rekodi/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByIDNo(ctx context.Context, idNo string) (Student, error) {
	idNo = core.CleanString(idNo, true /* lower */)
	if idNo == "" {
		return Student{}, core.NewValidationError(nil, core.FieldError{Field: "id_no", Error: "this field is required"})
	}
	return svc.repo.GetStudentByIDNo(ctx, idNo)
}

// ResolveID maps the external registration number to the internal student id.
func (svc *Service) ResolveID(ctx context.Context, idNo string) (int, error) {
	std, err := svc.GetByIDNo(ctx, idNo)
	if err != nil {
		return 0, err
	}
	return std.ID, nil
}
