package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type LeadRepositoryInterface = entity.LeadRepositoryInterface

type AdminRepositoryInterface = entity.AdminRepositoryInterface

// OnboardingNotifier delivers the welcome email for a new lead. It may queue
// the work or send it inline; callers treat it as best-effort.
type OnboardingNotifier interface {
	NotifyLeadCreated(ctx context.Context, lead entity.Lead) error
}

type SessionIssuer interface {
	Issue(ctx context.Context) (string, error)
	TTL() time.Duration
}

type PasswordVerifier interface {
	Compare(hash, password string) error
}

// LeadMetrics receives domain counters. A nil LeadMetrics is allowed.
type LeadMetrics interface {
	LeadCreated()
	LeadUpdated(field, result string)
	NotificationFailed()
}

type noopMetrics struct{}

func (noopMetrics) LeadCreated()               {}
func (noopMetrics) LeadUpdated(string, string) {}
func (noopMetrics) NotificationFailed()        {}

func metricsOrNoop(m LeadMetrics) LeadMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
