package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

func TestHiddenView_Leads(t *testing.T) {
	book := NewLeadBook([]entity.Lead{
		newLead("1", "ana", nil),
		newLead("2", "bea", ptr(entity.StatusNotInterested)),
	})
	view := NewHiddenView(book, new(MockGateway), &Notices{}, zap.NewNop())

	leads := view.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "2", leads[0].ID)
}

func TestHiddenView_ReclassifyRemovesFromView(t *testing.T) {
	book := NewLeadBook([]entity.Lead{newLead("2", "bea", ptr(entity.StatusNotInterested))})
	gw := new(MockGateway)
	view := NewHiddenView(book, gw, &Notices{}, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "2", statusPatch(entity.StatusInterested)).
		Return(&entity.Lead{ID: "2"}, nil).Once()

	require.NoError(t, view.ChangeStatus(context.Background(), "2", entity.StatusInterested))
	assert.Empty(t, view.Leads())
	got, ok := book.Get("2")
	require.True(t, ok)
	assert.Equal(t, entity.StatusInterested, got.EffectiveStatus())
}

func TestHiddenView_FailureKeepsLead(t *testing.T) {
	book := NewLeadBook([]entity.Lead{newLead("2", "bea", ptr(entity.StatusNotInterested))})
	gw := new(MockGateway)
	notices := &Notices{}
	view := NewHiddenView(book, gw, notices, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "2", statusPatch(entity.StatusLead)).
		Return(nil, errors.New("UNAUTHORIZED")).Once()

	require.Error(t, view.ChangeStatus(context.Background(), "2", entity.StatusLead))
	require.Len(t, view.Leads(), 1)
	assert.Equal(t, []string{"Error al actualizar el estado: UNAUTHORIZED"}, notices.Drain())
}
