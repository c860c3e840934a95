package domain

import (
	"context"
	"net/url"
)

// Requester sends one request to the backend API and decodes the envelope's
// data into out (which may be nil). Implemented by the api client.
type Requester interface {
	Send(ctx context.Context, method, path string, params url.Values, out any) error
}

// ItemRepository provides access to synchronized items
type ItemRepository interface {
	// ListItems returns one server-side page of items
	ListItems(ctx context.Context, q ListQuery) (ListResult, error)

	// GetItem returns a single item by ID
	GetItem(ctx context.Context, id string) (Item, error)
}

// StatsRepository provides aggregate statistics
type StatsRepository interface {
	GetStats(ctx context.Context) (StatsSnapshot, error)
}

// SyncBackend triggers and observes the backend's data refresh job
type SyncBackend interface {
	// TriggerSync asks the backend to start a sync. A nil error is the ack.
	TriggerSync(ctx context.Context) error

	// SyncStatus reports the backend's current job status
	SyncStatus(ctx context.Context) (SyncStatus, error)
}

// SyncLogRepository provides the backend's sync history
type SyncLogRepository interface {
	ListSyncLogs(ctx context.Context) ([]SyncLog, error)
}
