package services

import "github.com/ramplink/ramp_link_app/internal/core/domain"

// ProjectionSnapshot is one full emission of the live projection. Loading is
// false once the initial load (or its failure) has completed.
type ProjectionSnapshot struct {
	Transactions []domain.Transaction
	Loading      bool
}

// ProjectionSvcFacade mirrors the remote transaction collection into an
// ordered in-memory list, re-deriving status on every change.
type ProjectionSvcFacade interface {
	// Snapshot returns the current state without subscribing.
	Snapshot() ProjectionSnapshot
	// Subscribe returns a channel of full replacement snapshots and a
	// disposer releasing the subscription. The current snapshot is delivered
	// first. The channel is closed when the projection shuts down.
	Subscribe() (<-chan ProjectionSnapshot, func())
	// Close tears down the remote watch and closes all subscriber channels.
	Close()
}
