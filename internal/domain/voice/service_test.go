package voice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/inventory"
)

type stubStock struct {
	items []inventory.Item
}

func (s stubStock) Snapshot(context.Context) []inventory.Item {
	return s.items
}

func testStock() stubStock {
	return stubStock{items: []inventory.Item{
		{ID: "OBT-102", Name: "Amoxicillin 500mg", Stock: 450, Unit: "Tablet", Status: inventory.StatusOK},
		{ID: "OBT-105", Name: "Paracetamol Infus", Stock: 24, Unit: "Botol", Status: inventory.StatusCritical, Advisory: "Stok habis dalam 48 jam"},
	}}
}

func newTestVoice(t *testing.T) *Service {
	t.Helper()
	tokens := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "simrs", TTL: time.Minute})
	return NewService(tokens, testStock())
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.NotEmpty(t, info.Token)
	assert.True(t, info.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, svc.ActiveSessions())
}

func TestDispatch_Navigate(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	res, err := svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionNavigate, View: "pharmacy"})
	require.NoError(t, err)
	assert.Equal(t, ActionNavigate, res.Type)
	assert.Equal(t, ViewPharmacy, res.View)
	assert.Nil(t, res.Stock)

	_, err = svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionNavigate, View: "garage"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDispatch_CheckStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	res, err := svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionCheckStock, ItemName: "paracetamol"})
	require.NoError(t, err)
	assert.Equal(t, ActionCheckStock, res.Type)
	require.NotNil(t, res.Stock)
	assert.Equal(t, "OBT-105", res.Stock.ItemID)
	assert.Equal(t, 24, res.Stock.Stock)
	assert.Equal(t, "Stok habis dalam 48 jam", res.Stock.Advisory)

	_, err = svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionCheckStock, ItemName: "insulin"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionCheckStock})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDispatch_UnknownAction(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, info.ID, info.Token, Action{Type: "reboot"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestDispatch_RejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	first, err := svc.StartSession(ctx)
	require.NoError(t, err)
	second, err := svc.StartSession(ctx)
	require.NoError(t, err)

	// A valid token for another session must not be accepted.
	_, err = svc.Dispatch(ctx, first.ID, second.Token, Action{Type: ActionNavigate, View: "DASHBOARD"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestDispatch_RejectsForgedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	forger := NewTokenService(TokenConfig{Secret: "other-secret", TTL: time.Minute})
	forged, _, err := forger.Issue(info.ID)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, info.ID, forged, Action{Type: ActionNavigate, View: "DASHBOARD"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestDispatch_ClosedSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	svc.Close(ctx, info.ID)

	_, err = svc.Dispatch(ctx, info.ID, info.Token, Action{Type: ActionNavigate, View: "DASHBOARD"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestClose_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestVoice(t)

	info, err := svc.StartSession(ctx)
	require.NoError(t, err)

	svc.Close(ctx, info.ID)
	svc.Close(ctx, info.ID)
	svc.Close(ctx, "no-such-session")
	assert.Equal(t, 0, svc.ActiveSessions())
}

func TestParseView(t *testing.T) {
	v, err := ParseView(" billing ")
	require.NoError(t, err)
	assert.Equal(t, ViewBilling, v)

	_, err = ParseView("")
	assert.True(t, apperror.IsValidation(err))
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokenService(TokenConfig{Secret: "test-secret", TTL: -time.Minute})

	// NewTokenService replaces a non-positive TTL with the default.
	token, expiresAt, err := tokens.Issue("sess-1")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	id, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}
