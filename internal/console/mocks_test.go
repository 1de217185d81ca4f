package console

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockGateway) UpdateLead(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func statusPatch(s string) entity.LeadPatch {
	return entity.LeadPatch{Status: &s}
}

func notesPatch(s string) entity.LeadPatch {
	return entity.LeadPatch{Notes: &s}
}

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newLead(id, name string, status *string) entity.Lead {
	return entity.Lead{
		ID:        id,
		Name:      name,
		Phone:     "600",
		Email:     name + "@example.com",
		Status:    status,
		CreatedAt: baseTime,
	}
}

func ptr(s string) *string { return &s }
