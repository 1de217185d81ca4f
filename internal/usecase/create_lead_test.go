package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

func newCreateLeadUseCase(repo *MockLeadRepository, notifier OnboardingNotifier, metrics LeadMetrics) (*CreateLeadUseCase, chan struct{}) {
	uc := NewCreateLeadUseCase(repo, notifier, metrics, nil)
	done := make(chan struct{}, 1)
	uc.notifyDone = func() { done <- struct{}{} }
	return uc, done
}

func waitNotification(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification goroutine did not finish")
	}
}

func TestCreateLeadDefaultsStatusAndNotes(t *testing.T) {
	repo := new(MockLeadRepository)
	notifier := new(MockNotifier)
	metrics := new(MockMetrics)

	var saved *entity.Lead
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Lead) }).
		Return(nil)
	notifier.On("NotifyLeadCreated", mock.Anything, mock.Anything).Return(nil)
	metrics.On("LeadCreated").Return()

	uc, done := newCreateLeadUseCase(repo, notifier, metrics)

	out, err := uc.Execute(context.Background(), CreateLeadInput{
		Name:  "Ana",
		Phone: "600",
		Email: "a@x.com",
	})
	require.NoError(t, err)
	waitNotification(t, done)

	require.NotNil(t, saved)
	assert.Equal(t, saved.ID, out.ID)
	assert.Nil(t, saved.Status)
	assert.Equal(t, entity.DefaultStatus, saved.EffectiveStatus())
	assert.Nil(t, saved.Notes)
	assert.Nil(t, saved.Clinic)
	assert.False(t, saved.CreatedAt.IsZero())
	notifier.AssertCalled(t, "NotifyLeadCreated", mock.Anything, mock.MatchedBy(func(l entity.Lead) bool {
		return l.Email == "a@x.com" && l.Name == "Ana"
	}))
	metrics.AssertExpectations(t)
}

func TestCreateLeadKeepsOptionalFields(t *testing.T) {
	repo := new(MockLeadRepository)
	var saved *entity.Lead
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Lead) }).
		Return(nil)

	uc, done := newCreateLeadUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), CreateLeadInput{
		Name:      " Ana ",
		Phone:     "600",
		Email:     "a@x.com",
		Clinic:    "Fisio Ana, Madrid",
		Revenue:   "50K-100K",
		Challenge: "  ",
	})
	require.NoError(t, err)
	waitNotification(t, done)

	assert.Equal(t, "Ana", saved.Name)
	require.NotNil(t, saved.Clinic)
	assert.Equal(t, "Fisio Ana, Madrid", *saved.Clinic)
	require.NotNil(t, saved.Revenue)
	assert.Nil(t, saved.Challenge)
}

func TestCreateLeadValidation(t *testing.T) {
	cases := map[string]CreateLeadInput{
		"missing name":  {Phone: "600", Email: "a@x.com"},
		"missing phone": {Name: "Ana", Email: "a@x.com"},
		"missing email": {Name: "Ana", Phone: "600"},
		"blank name":    {Name: "   ", Phone: "600", Email: "a@x.com"},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockLeadRepository)
			uc := NewCreateLeadUseCase(repo, nil, nil, nil)

			out, err := uc.Execute(context.Background(), input)

			assert.Nil(t, out)
			assert.Equal(t, CodeValidation, ErrorCode(err))
			assert.EqualError(t, err, "Faltan campos requeridos: name, phone, email")
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateLeadNotificationFailureDoesNotFailCreation(t *testing.T) {
	repo := new(MockLeadRepository)
	notifier := new(MockNotifier)
	metrics := new(MockMetrics)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyLeadCreated", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	metrics.On("LeadCreated").Return()
	metrics.On("NotificationFailed").Return()

	uc, done := newCreateLeadUseCase(repo, notifier, metrics)

	out, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ana", Phone: "600", Email: "a@x.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	waitNotification(t, done)
	metrics.AssertCalled(t, "NotificationFailed")
}

func TestCreateLeadRepositoryFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	notifier := new(MockNotifier)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := NewCreateLeadUseCase(repo, notifier, nil, nil)

	out, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ana", Phone: "600", Email: "a@x.com"})

	assert.Nil(t, out)
	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, CodeDatabase, ErrorCode(err))
	notifier.AssertNotCalled(t, "NotifyLeadCreated", mock.Anything, mock.Anything)
}
