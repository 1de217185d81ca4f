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

func TestNotesEditor_ChangeThenBlur(t *testing.T) {
	lead := newLead("1", "ana", nil)
	lead.Notes = ptr("llamar")
	book := NewLeadBook([]entity.Lead{lead})
	gw := new(MockGateway)
	editor := NewNotesEditor(book, gw, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "1", notesPatch("llamar el lunes")).
		Return(&entity.Lead{ID: "1"}, nil).Once()

	require.True(t, editor.Focus("1"))
	for _, text := range []string{"llamar e", "llamar el", "llamar el lunes"} {
		require.NoError(t, editor.Change(text))
		got, _ := book.Get("1")
		assert.Equal(t, text, got.NotesText())
	}
	gw.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, editor.Blur(context.Background()))

	gw.AssertNumberOfCalls(t, "UpdateLead", 1)
	assert.False(t, editor.Focused())
	got, _ := book.Get("1")
	assert.Equal(t, "llamar el lunes", got.NotesText())
}

func TestNotesEditor_BlurFailureRollsBack(t *testing.T) {
	lead := newLead("1", "ana", nil)
	lead.Notes = ptr("original")
	book := NewLeadBook([]entity.Lead{lead})
	gw := new(MockGateway)
	editor := NewNotesEditor(book, gw, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "1", notesPatch("borrador")).
		Return(nil, errors.New("Error de base de datos: timeout")).Once()

	require.True(t, editor.Focus("1"))
	require.NoError(t, editor.Change("borrador"))

	err := editor.Blur(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	gw.AssertNumberOfCalls(t, "UpdateLead", 1)
	got, _ := book.Get("1")
	assert.Equal(t, "original", got.NotesText())
}

func TestNotesEditor_EmptyTextClears(t *testing.T) {
	lead := newLead("1", "ana", nil)
	lead.Notes = ptr("algo")
	book := NewLeadBook([]entity.Lead{lead})
	gw := new(MockGateway)
	editor := NewNotesEditor(book, gw, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "1", notesPatch("")).
		Return(&entity.Lead{ID: "1"}, nil).Once()

	require.True(t, editor.Focus("1"))
	require.NoError(t, editor.Change(""))
	require.NoError(t, editor.Blur(context.Background()))

	got, _ := book.Get("1")
	assert.Nil(t, got.Notes)
	gw.AssertExpectations(t)
}

func TestNotesEditor_RequiresFocus(t *testing.T) {
	book := NewLeadBook([]entity.Lead{newLead("1", "ana", nil)})
	editor := NewNotesEditor(book, new(MockGateway), nil)

	assert.ErrorIs(t, editor.Change("x"), ErrNotFocused)
	assert.ErrorIs(t, editor.Blur(context.Background()), ErrNotFocused)
	assert.False(t, editor.Focus("missing"))
}

func TestNotesEditor_BlurFailureReportsCommitStep(t *testing.T) {
	lead := newLead("1", "ana", nil)
	book := NewLeadBook([]entity.Lead{lead})
	gw := new(MockGateway)
	editor := NewNotesEditor(book, gw, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "1", notesPatch("nota")).
		Return(nil, errors.New("Lead no encontrado")).Once()

	require.True(t, editor.Focus("1"))
	require.NoError(t, editor.Change("nota"))
	err := editor.Blur(context.Background())

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "commit", opErr.Op)
	assert.Equal(t, "Lead no encontrado", Reason(err))
	got, _ := book.Get("1")
	assert.Nil(t, got.Notes)
}

func TestNotesEditor_BlurFailureKeepsStatus(t *testing.T) {
	book := NewLeadBook([]entity.Lead{newLead("1", "ana", nil)})
	gw := new(MockGateway)
	editor := NewNotesEditor(book, gw, zap.NewNop())

	gw.On("UpdateLead", mock.Anything, "1", notesPatch("nota")).
		Return(nil, errors.New("timeout")).Once()

	require.True(t, editor.Focus("1"))
	require.NoError(t, editor.Change("nota"))
	book.SetStatus("1", entity.StatusWarm)

	require.Error(t, editor.Blur(context.Background()))

	got, _ := book.Get("1")
	assert.Nil(t, got.Notes)
	assert.Equal(t, entity.StatusWarm, got.EffectiveStatus())
}
