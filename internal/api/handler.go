package api

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/engine"
	"collections-assign-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	engine    *engine.Engine
	calc      *availability.Calculator
	webpush   *webpush.Options
	opTimeout time.Duration
}

// NewHandler creates a new API handler. opTimeout bounds each mutating engine
// call; zero means no deadline.
func NewHandler(s store.Store, eng *engine.Engine, calc *availability.Calculator, webpushOptions *webpush.Options, opTimeout time.Duration) *Handler {
	return &Handler{
		store:     s,
		engine:    eng,
		calc:      calc,
		webpush:   webpushOptions,
		opTimeout: opTimeout,
	}
}

// opContext derives the bounded context for one engine operation.
func (h *Handler) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.opTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.opTimeout)
}
