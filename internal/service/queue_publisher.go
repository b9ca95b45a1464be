// Package service holds outbound integrations sitting between handlers and
// external systems.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/queue"
)

// CatalogPublisher publishes catalog change events to RabbitMQ. Publishing is
// best-effort: every failure is logged and swallowed so a broken broker never
// fails the request that produced the event.
type CatalogPublisher struct {
	url string
}

func NewCatalogPublisher(url string) *CatalogPublisher {
	return &CatalogPublisher{url: url}
}

// MovieCreated announces a new movie in the catalog.
func (p *CatalogPublisher) MovieCreated(m *model.Movie) {
	p.publish(queue.CatalogEvent{
		Action:     queue.ActionMovieCreated,
		MovieID:    m.ID,
		Title:      m.Title,
		Language:   m.Language,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// MovieDeleted announces a movie's removal.
func (p *CatalogPublisher) MovieDeleted(id uint64, title string) {
	p.publish(queue.CatalogEvent{
		Action:     queue.ActionMovieDeleted,
		MovieID:    id,
		Title:      title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *CatalogPublisher) publish(ev queue.CatalogEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.CatalogQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.CatalogQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
