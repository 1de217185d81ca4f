package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const emptyUpdateMessage = "No hay datos para actualizar"

type UpdateLeadUseCase struct {
	Repo    LeadRepositoryInterface
	Metrics LeadMetrics
	Logger  *zap.Logger
}

func NewUpdateLeadUseCase(repo LeadRepositoryInterface, metrics LeadMetrics, logger *zap.Logger) *UpdateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateLeadUseCase{Repo: repo, Metrics: metricsOrNoop(metrics), Logger: logger}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if id == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "ID de lead requerido"}
	}
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		if input.Status == nil && input.Notes == nil {
			return nil, validationFailure(emptyUpdateMessage, errs)
		}
		return nil, validationFailure("Estado no válido", errs)
	}

	patch := input.Patch()
	field := patchField(patch)

	lead, err := uc.Repo.Update(ctx, id, patch)
	switch {
	case err == nil:
		uc.Metrics.LeadUpdated(field, "ok")
		return lead, nil
	case errors.Is(err, entity.ErrLeadNotFound):
		uc.Metrics.LeadUpdated(field, "not_found")
		return nil, &DomainError{Code: CodeNotFound, Message: "Lead no encontrado"}
	case errors.Is(err, entity.ErrEmptyPatch):
		return nil, &DomainError{Code: CodeValidation, Message: emptyUpdateMessage}
	case errors.Is(err, entity.ErrInvalidStatus):
		return nil, &DomainError{Code: CodeValidation, Message: "Estado no válido"}
	default:
		uc.Metrics.LeadUpdated(field, "error")
		uc.Logger.Error("failed to update lead", zap.String("lead_id", id), zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error de base de datos: " + err.Error(),
			Err:     err,
		}
	}
}

func patchField(p entity.LeadPatch) string {
	switch {
	case p.Status != nil && p.Notes != nil:
		return "status,notes"
	case p.Status != nil:
		return "status"
	default:
		return "notes"
	}
}
