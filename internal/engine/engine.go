// Package engine owns every mutation of ticket assignment state. All writes
// go through one code path with a per-ticket mutual-exclusion boundary, so
// racing operator actions serialize instead of interleaving.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/eligibility"
	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/schedule"
	"collections-assign-backend/internal/store"
)

// Notifier receives ticket ids after a committed assignment change. Delivery
// is fire-and-forget and never a precondition for success.
type Notifier interface {
	Dispatch(ticketID string)
}

// Engine performs assignment, reassignment, and bulk transfer of tickets.
type Engine struct {
	store    store.Store
	notifier Notifier
	locks    *ticketLocks
}

// New creates an assignment engine. notifier may be nil.
func New(s store.Store, notifier Notifier) *Engine {
	return &Engine{
		store:    s,
		notifier: notifier,
		locks:    newTicketLocks(),
	}
}

// Assign assigns a ticket to an agent with a scheduled contact date and time.
// Eligibility is re-checked here regardless of any filtering the caller did:
// shifts and ticket segments may have changed since the caller's query.
func (e *Engine) Assign(ctx context.Context, ticketID, resourceID, date, timeOfDay string) error {
	return e.assign(ctx, ticketID, resourceID, date, timeOfDay, model.EventKindAssign)
}

// Reassign moves a ticket to a different agent. The contract is identical to
// Assign; the previous agent's load drops implicitly because loads are always
// recomputed from live rows.
func (e *Engine) Reassign(ctx context.Context, ticketID, resourceID, date, timeOfDay string) error {
	return e.assign(ctx, ticketID, resourceID, date, timeOfDay, model.EventKindReassign)
}

func (e *Engine) assign(ctx context.Context, ticketID, resourceID, date, timeOfDay, kind string) error {
	weekday, err := schedule.WeekdayOf(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	clock, err := schedule.ParseClock(timeOfDay)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if err := e.locks.Acquire(ctx, ticketID); err != nil {
		return err
	}
	defer e.locks.Release(ticketID)

	ticket, err := e.store.GetTicket(ctx, ticketID)
	if err != nil {
		return mapStoreErr(err, "ticket", ticketID)
	}
	if ticket.State == model.StateFinalized {
		return fmt.Errorf("%w: ticket %s", ErrTerminal, ticketID)
	}

	resource, err := e.store.GetResource(ctx, resourceID)
	if err != nil {
		return mapStoreErr(err, "resource", resourceID)
	}

	candidate, err := candidateFor(resource, weekday)
	if err != nil {
		return err
	}
	if reason, ok := eligibility.Check(candidate, *ticket); !ok {
		return &IneligibleError{ResourceID: resourceID, Reason: reason}
	}
	if !candidate.Window.Contains(clock) {
		return &IneligibleError{ResourceID: resourceID, Reason: eligibility.ReasonOutsideWindow}
	}

	newState := ticket.State
	if newState == model.StatePending {
		newState = model.StateInExecution
	}

	// Last cancellation point: past here the store commits or rolls back as
	// one transaction, so an aborted call leaves no partial write.
	if ctx.Err() != nil {
		return ErrTimeout
	}

	if err := e.store.UpdateTicketAssignment(ctx, ticketID, resourceID, date, timeOfDay, newState, kind); err != nil {
		return mapStoreErr(err, "ticket", ticketID)
	}

	log.Printf("ticket %s assigned to resource %s for %s %s (%s)", ticketID, resourceID, date, timeOfDay, kind)
	e.notify(ticketID)
	return nil
}

// BulkTransfer moves every open ticket of fromID to toID in one atomic
// operation, keeping each ticket's scheduled date and time. It deliberately
// skips per-ticket destination eligibility: this is the emergency coverage
// path used when an agent drops out, and the bypass is logged and recorded on
// every history event it writes.
func (e *Engine) BulkTransfer(ctx context.Context, fromID, toID string) (int, error) {
	if fromID == "" || toID == "" || fromID == toID {
		return 0, fmt.Errorf("%w: transfer requires two distinct resource ids", ErrInvalidArgument)
	}

	if _, err := e.store.GetResource(ctx, fromID); err != nil {
		return 0, mapStoreErr(err, "resource", fromID)
	}
	if _, err := e.store.GetResource(ctx, toID); err != nil {
		return 0, mapStoreErr(err, "resource", toID)
	}

	tickets, err := e.store.ListTicketsByResource(ctx, fromID, model.OpenStates)
	if err != nil {
		return 0, mapStoreErr(err, "resource", fromID)
	}
	if len(tickets) == 0 {
		return 0, ErrNothingToTransfer
	}

	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}

	// Hold the whole matched set before mutating any of it; the store
	// transaction is the authority on what actually moves.
	if err := e.locks.AcquireAll(ctx, ids); err != nil {
		return 0, err
	}
	defer e.locks.ReleaseAll(ids)

	if ctx.Err() != nil {
		return 0, ErrTimeout
	}

	moved, err := e.store.TransferTickets(ctx, fromID, toID)
	if err != nil {
		return 0, mapStoreErr(err, "resource", fromID)
	}
	if moved == 0 {
		return 0, ErrNothingToTransfer
	}

	log.Printf("bulk transfer: moved %d tickets from %s to %s, destination eligibility bypassed", moved, fromID, toID)
	for _, id := range ids {
		e.notify(id)
	}
	return int(moved), nil
}

func (e *Engine) notify(ticketID string) {
	if e.notifier != nil {
		e.notifier.Dispatch(ticketID)
	}
}

// candidateFor resolves an agent's duty status for a weekday into the shape
// the eligibility rules consume.
func candidateFor(resource *model.Resource, weekday time.Weekday) (availability.ResourceAvailability, error) {
	candidate := availability.ResourceAvailability{Resource: *resource}

	shift, ok := resource.ShiftFor(weekday)
	if !ok || shift.Rest {
		return candidate, nil
	}

	window, err := schedule.ParseWindow(shift.StartTime, shift.EndTime)
	if err != nil {
		return candidate, fmt.Errorf("%w: corrupt shift calendar for resource %s: %v", ErrStoreUnavailable, resource.ID, err)
	}
	candidate.OnDuty = true
	candidate.Window = window
	return candidate, nil
}

// mapStoreErr folds store failures into the engine taxonomy.
func mapStoreErr(err error, kind, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
