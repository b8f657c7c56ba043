package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"collections-assign-backend/internal/model"
)

// Store defines the persistence operations the engine and the API depend on.
type Store interface {
	// DB exposes the underlying handle for collaborators that manage their
	// own tables (push subscriptions).
	DB() *gorm.DB

	GetResource(ctx context.Context, id string) (*model.Resource, error)
	ListResources(ctx context.Context) ([]model.Resource, error)

	GetTicket(ctx context.Context, id string) (*model.Ticket, error)
	ListTicketsByResource(ctx context.Context, resourceID string, states []model.TicketState) ([]model.Ticket, error)
	ListUnassignedBySegment(ctx context.Context, segment model.Segment) ([]model.Ticket, error)

	// CountOpenByResource returns the live open-ticket count per resource id.
	// Loads are always recomputed from rows, never kept as running counters.
	CountOpenByResource(ctx context.Context) (map[string]int64, error)

	// UpdateTicketAssignment applies one assignment change and appends the
	// matching history event in a single transaction.
	UpdateTicketAssignment(ctx context.Context, ticketID, resourceID, date, timeOfDay string, newState model.TicketState, kind string) error

	// TransferTickets moves every open ticket of fromID to toID and appends
	// one history event per moved ticket, all in a single transaction.
	TransferTickets(ctx context.Context, fromID, toID string) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetResource(ctx context.Context, id string) (*model.Resource, error) {
	var res model.Resource
	if err := s.db.WithContext(ctx).Preload("Shifts").First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *gormStore) ListResources(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := s.db.WithContext(ctx).Preload("Shifts").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func (s *gormStore) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) ListTicketsByResource(ctx context.Context, resourceID string, states []model.TicketState) ([]model.Ticket, error) {
	var tickets []model.Ticket
	q := s.db.WithContext(ctx).Where("assigned_resource_id = ?", resourceID)
	if len(states) > 0 {
		q = q.Where("state IN ?", states)
	}
	if err := q.Order("id").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets for resource %s: %w", resourceID, err)
	}
	return tickets, nil
}

func (s *gormStore) ListUnassignedBySegment(ctx context.Context, segment model.Segment) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := s.db.WithContext(ctx).
		Where("segment = ? AND assigned_resource_id IS NULL AND state IN ?", segment, model.OpenStates).
		Order("id").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned %s tickets: %w", segment, err)
	}
	return tickets, nil
}

func (s *gormStore) CountOpenByResource(ctx context.Context) (map[string]int64, error) {
	type countRow struct {
		AssignedResourceID string
		OpenTickets        int64
	}
	var rows []countRow
	err := s.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select("assigned_resource_id, COUNT(*) as open_tickets").
		Where("assigned_resource_id IS NOT NULL AND state IN ?", model.OpenStates).
		Group("assigned_resource_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open ticket counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.AssignedResourceID] = r.OpenTickets
	}
	return counts, nil
}

func (s *gormStore) UpdateTicketAssignment(ctx context.Context, ticketID, resourceID, date, timeOfDay string, newState model.TicketState, kind string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.Ticket
		if err := tx.First(&ticket, "id = ?", ticketID).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"assigned_resource_id": resourceID,
			"scheduled_date":       date,
			"scheduled_time":       timeOfDay,
			"state":                newState,
		}
		if err := tx.Model(&model.Ticket{}).Where("id = ?", ticketID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update assignment for ticket %s: %w", ticketID, err)
		}

		event := model.AssignmentEvent{
			TicketID:       ticketID,
			FromResourceID: ticket.AssignedResourceID,
			ToResourceID:   resourceID,
			ScheduledDate:  date,
			ScheduledTime:  timeOfDay,
			Kind:           kind,
			CreatedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to append assignment event for ticket %s: %w", ticketID, err)
		}
		return nil
	})
}

func (s *gormStore) TransferTickets(ctx context.Context, fromID, toID string) (int64, error) {
	var moved int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tickets []model.Ticket
		if err := tx.
			Where("assigned_resource_id = ? AND state IN ?", fromID, model.OpenStates).
			Order("id").
			Find(&tickets).Error; err != nil {
			return fmt.Errorf("failed to match tickets of resource %s: %w", fromID, err)
		}
		if len(tickets) == 0 {
			return nil
		}

		ids := make([]string, len(tickets))
		events := make([]model.AssignmentEvent, len(tickets))
		now := time.Now().UTC()
		for i, t := range tickets {
			ids[i] = t.ID
			events[i] = model.AssignmentEvent{
				TicketID:            t.ID,
				FromResourceID:      t.AssignedResourceID,
				ToResourceID:        toID,
				ScheduledDate:       t.ScheduledDate,
				ScheduledTime:       t.ScheduledTime,
				Kind:                model.EventKindBulkTransfer,
				EligibilityBypassed: true,
				CreatedAt:           now,
			}
		}

		res := tx.Model(&model.Ticket{}).
			Where("id IN ? AND assigned_resource_id = ?", ids, fromID).
			Update("assigned_resource_id", toID)
		if res.Error != nil {
			return fmt.Errorf("failed to transfer tickets from %s to %s: %w", fromID, toID, res.Error)
		}

		if err := tx.Create(&events).Error; err != nil {
			return fmt.Errorf("failed to append transfer events: %w", err)
		}

		moved = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
