package store

import (
	"context"

	"github.com/nhle/bugboard/internal/model"
)

// Store is the session state holder for tickets and the activity log.
// The backing database lives in memory only; nothing survives the process.
type Store interface {
	// ReplaceTickets swaps the whole ticket collection for the given
	// repository's freshly normalized tickets. Source order is preserved.
	ReplaceTickets(ctx context.Context, tickets []model.Ticket) error

	// GetTickets returns the full collection in source order.
	GetTickets(ctx context.Context) ([]model.Ticket, error)

	// GetTicketByID returns one ticket, or nil when absent.
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)

	// DeleteTicket removes one ticket from the collection.
	DeleteTicket(ctx context.Context, id string) error

	// ResolveTicket marks a ticket resolved. The annotation is terminal
	// and local-only: nothing re-derives it from source data.
	ResolveTicket(ctx context.Context, id string) error

	// ClearTickets empties the collection.
	ClearTickets(ctx context.Context) error

	// TicketCounts returns the derived dashboard statistics.
	TicketCounts(ctx context.Context) (model.Counts, error)

	// AppendActivity records one append-only activity entry.
	AppendActivity(ctx context.Context, rec model.ActivityRecord) error

	// GetActivities returns all activity records, newest first.
	GetActivities(ctx context.Context) ([]model.ActivityRecord, error)

	// ClearActivities empties the activity log.
	ClearActivities(ctx context.Context) error
}
