// Package queue defines the catalog event payloads exchanged over the
// message broker and the background consumer that records them.
package queue

// Actions carried by CatalogEvent.
const (
	ActionMovieCreated = "movie.created"
	ActionMovieDeleted = "movie.deleted"
)

// CatalogEvent is published whenever the movie catalog changes. It carries
// enough detail for downstream consumers to log or trigger follow-up work
// without querying the primary database.
type CatalogEvent struct {
	Action     string `json:"action"`
	MovieID    uint64 `json:"movie_id"`
	Title      string `json:"title"`
	Language   string `json:"language,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// CatalogQueueName is the durable queue both publisher and consumer declare.
const CatalogQueueName = "catalog.events"
