package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/infra/session"
	"github.com/xavierca1/playbook-leads/internal/usecase"
)

type MockLeadCreator struct {
	mock.Mock
}

func (m *MockLeadCreator) Execute(ctx context.Context, input usecase.CreateLeadInput) (*usecase.CreateLeadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateLeadOutput), args.Error(1)
}

type MockLeadLister struct {
	mock.Mock
}

func (m *MockLeadLister) Execute(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadLister) Hidden(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

type MockLeadUpdater struct {
	mock.Mock
}

func (m *MockLeadUpdater) Execute(ctx context.Context, id string, input usecase.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Execute(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

type staticSessions struct {
	token string
}

func (s staticSessions) Validate(_ context.Context, token string) error {
	if token != s.token {
		return session.ErrInvalidSession
	}
	return nil
}
