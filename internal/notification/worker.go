package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"collections-assign-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans assignment-change notifications out to the operators
// subscribed to the affected agent. Delivery is best effort: the engine has
// already committed by the time a job lands here.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size*8),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case ticketID := <-wp.jobs:
			wp.sendForTicket(ctx, ticketID)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a ticket for notification without blocking the caller. A
// full queue drops the job; assignment state is already durable and the
// dashboard shows it on the next refresh.
func (wp *WorkerPool) Dispatch(ticketID string) {
	select {
	case wp.jobs <- ticketID:
	default:
		log.Printf("notification queue full, dropping update for ticket %s", ticketID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// sendForTicket notifies every operator subscribed to the ticket's agent.
func (wp *WorkerPool) sendForTicket(ctx context.Context, ticketID string) {
	var ticket model.Ticket
	if err := wp.db.WithContext(ctx).First(&ticket, "id = ?", ticketID).Error; err != nil {
		log.Printf("error fetching ticket %s for notification: %v", ticketID, err)
		return
	}
	if ticket.AssignedResourceID == nil {
		return
	}
	resourceID := *ticket.AssignedResourceID

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_resource_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.resource_id = ?", resourceID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("error fetching subscriptions for resource %s: %v", resourceID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	resourceLabel := resourceID
	var resource model.Resource
	if err := wp.db.WithContext(ctx).
		Select("display_name").
		First(&resource, "id = ?", resourceID).Error; err != nil {
		log.Printf("error fetching resource %s: %v", resourceID, err)
	} else if resource.DisplayName != "" {
		resourceLabel = resource.DisplayName
	}

	message := fmt.Sprintf("Ticket %s is now assigned to %s (%s %s)",
		ticket.ID, resourceLabel, ticket.ScheduledDate, ticket.ScheduledTime)
	log.Printf("sending %d notifications for ticket %s", len(subscriptions), ticketID)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

// send delivers a single web push notification.
func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Prune expired subscriptions.
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription for endpoint %s is expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
