package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Repo   LeadRepositoryInterface
	Logger *zap.Logger
}

func NewListLeadsUseCase(repo LeadRepositoryInterface, logger *zap.Logger) *ListLeadsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListLeadsUseCase{Repo: repo, Logger: logger}
}

// Execute returns every lead, newest first.
func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		uc.Logger.Error("failed to list leads", zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error al obtener los leads",
			Err:     err,
		}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

// Hidden returns only the leads whose status is in the hidden subset.
func (uc *ListLeadsUseCase) Hidden(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.ListByStatuses(ctx, entity.HiddenStatuses(), false)
	if err != nil {
		uc.Logger.Error("failed to list hidden leads", zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error al obtener los leads",
			Err:     err,
		}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}
