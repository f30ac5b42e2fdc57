// Package voice exposes the assistant action surface: session management
// and the two dispatchable tools, view navigation and stock lookup.
package voice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"simrs/internal/core/apperror"
	"simrs/internal/domain/inventory"
	"simrs/pkg/logger"
)

// View is a navigable dashboard view.
type View string

const (
	ViewDashboard View = "DASHBOARD"
	ViewPatients  View = "PATIENTS"
	ViewPharmacy  View = "PHARMACY"
	ViewBilling   View = "BILLING"
	ViewSettings  View = "SETTINGS"
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToUpper(strings.TrimSpace(s))); v {
	case ViewDashboard, ViewPatients, ViewPharmacy, ViewBilling, ViewSettings:
		return v, nil
	default:
		return "", apperror.NewValidation("unknown view").WithDetail("view", s)
	}
}

// Action types. These are the only two tools the assistant can invoke.
const (
	ActionNavigate   = "navigate"
	ActionCheckStock = "check_stock"
)

// Action is a tool invocation requested by the assistant.
type Action struct {
	Type     string `json:"type"`
	View     string `json:"view,omitempty"`
	ItemName string `json:"itemName,omitempty"`
}

// StockLevel is the answer to a stock lookup.
type StockLevel struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Stock    int    `json:"stock"`
	Unit     string `json:"unit"`
	Status   string `json:"status"`
	Advisory string `json:"advisory,omitempty"`
}

// ActionResult is the outcome of a dispatched action.
type ActionResult struct {
	Type  string      `json:"type"`
	View  View        `json:"view,omitempty"`
	Stock *StockLevel `json:"stock,omitempty"`
}

// StockReader provides the inventory snapshot for lookups.
type StockReader interface {
	Snapshot(ctx context.Context) []inventory.Item
}

// SessionInfo is returned to the client when a session starts.
type SessionInfo struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type session struct {
	id        string
	createdAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

// Service manages voice sessions and dispatches their actions.
type Service struct {
	tokens *TokenService
	stock  StockReader

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a voice service.
func NewService(tokens *TokenService, stock StockReader) *Service {
	return &Service{
		tokens:   tokens,
		stock:    stock,
		sessions: make(map[string]*session),
	}
}

// StartSession registers a new session and issues its token.
func (s *Service) StartSession(ctx context.Context) (SessionInfo, error) {
	id := uuid.New().String()

	token, expiresAt, err := s.tokens.Issue(id)
	if err != nil {
		return SessionInfo{}, apperror.NewInternal(err)
	}

	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.sessions[id] = &session{
		id:        id,
		createdAt: time.Now(),
		ctx:       sessCtx,
		cancel:    cancel,
	}
	s.mu.Unlock()

	logger.Info(ctx, "voice session started", "session_id", id)
	return SessionInfo{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Dispatch runs one action inside a session. The token must be valid and
// bound to the addressed session.
func (s *Service) Dispatch(ctx context.Context, sessionID, token string, action Action) (ActionResult, error) {
	boundID, err := s.tokens.Validate(token)
	if err != nil {
		return ActionResult{}, err
	}
	if boundID != sessionID {
		return ActionResult{}, apperror.NewUnauthorized("token is bound to another session")
	}

	s.mu.Lock()
	_, alive := s.sessions[sessionID]
	s.mu.Unlock()
	if !alive {
		return ActionResult{}, apperror.NewNotFound("voice session", sessionID)
	}

	switch action.Type {
	case ActionNavigate:
		view, err := ParseView(action.View)
		if err != nil {
			return ActionResult{}, err
		}
		logger.Debug(ctx, "voice navigate", "session_id", sessionID, "view", view)
		return ActionResult{Type: ActionNavigate, View: view}, nil

	case ActionCheckStock:
		level, err := s.lookupStock(ctx, action.ItemName)
		if err != nil {
			return ActionResult{}, err
		}
		return ActionResult{Type: ActionCheckStock, Stock: level}, nil

	default:
		return ActionResult{}, apperror.NewValidation("unknown action type").
			WithDetail("type", action.Type)
	}
}

// lookupStock finds the first item whose name contains the query,
// case-insensitively.
func (s *Service) lookupStock(ctx context.Context, itemName string) (*StockLevel, error) {
	needle := strings.ToLower(strings.TrimSpace(itemName))
	if needle == "" {
		return nil, apperror.NewValidation("itemName is required")
	}

	for _, it := range s.stock.Snapshot(ctx) {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return &StockLevel{
				ItemID:   it.ID,
				ItemName: it.Name,
				Stock:    it.Stock,
				Unit:     it.Unit,
				Status:   string(it.Status),
				Advisory: it.Advisory,
			}, nil
		}
	}
	return nil, apperror.NewNotFound("inventory item", itemName)
}

// Close cancels a session's context and releases it. Closing an unknown
// or already closed session is a no-op.
func (s *Service) Close(ctx context.Context, sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if ok {
		sess.cancel()
		logger.Info(ctx, "voice session closed", "session_id", sessionID)
	}
}

// ActiveSessions returns the number of open sessions.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
