package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const (
	notificationTimeout  = 30 * time.Second
	missingFieldsMessage = "Faltan campos requeridos: name, phone, email"
)

type CreateLeadUseCase struct {
	Repo     LeadRepositoryInterface
	Notifier OnboardingNotifier
	Metrics  LeadMetrics
	Logger   *zap.Logger

	// notifyDone, when set, is called after the background notification
	// finishes. Tests use it to wait for the goroutine.
	notifyDone func()
}

func NewCreateLeadUseCase(repo LeadRepositoryInterface, notifier OnboardingNotifier, metrics LeadMetrics, logger *zap.Logger) *CreateLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateLeadUseCase{
		Repo:     repo,
		Notifier: notifier,
		Metrics:  metricsOrNoop(metrics),
		Logger:   logger,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailure(missingFieldsMessage, errs)
	}

	lead := &entity.Lead{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		Clinic:    entity.StringPtr(strings.TrimSpace(input.Clinic)),
		Revenue:   entity.StringPtr(strings.TrimSpace(input.Revenue)),
		Challenge: entity.StringPtr(strings.TrimSpace(input.Challenge)),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		uc.Logger.Error("failed to persist lead", zap.String("email", lead.Email), zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "Error al guardar el lead",
			Err:     err,
		}
	}
	uc.Metrics.LeadCreated()

	// The request context ends with the response; the notification outlives it.
	go uc.notify(*lead)

	return &CreateLeadOutput{
		ID:      lead.ID,
		Message: "Lead guardado correctamente",
	}, nil
}

func (uc *CreateLeadUseCase) notify(lead entity.Lead) {
	if uc.notifyDone != nil {
		defer uc.notifyDone()
	}
	if uc.Notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if err := uc.Notifier.NotifyLeadCreated(ctx, lead); err != nil {
		uc.Metrics.NotificationFailed()
		uc.Logger.Warn("onboarding notification failed",
			zap.String("lead_id", lead.ID),
			zap.String("email", lead.Email),
			zap.Error(err),
		)
		return
	}
	uc.Logger.Info("onboarding notification dispatched", zap.String("lead_id", lead.ID))
}
