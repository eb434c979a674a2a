// Package notify delivers human-facing stock alerts.
package notify

import "context"

// Sink receives alert and health texts produced by the watch loop.
//
// Notify carries stock-change alerts; Health carries operational chatter
// (poll start, source failures). Implementations decide where each goes -
// the ledger and poller never read process environment for delivery
// configuration.
type Sink interface {
	Notify(ctx context.Context, text string) error
	Health(ctx context.Context, text string) error
}
