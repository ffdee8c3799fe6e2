package services

import (
	"log/slog"

	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/platform/config"
	"github.com/ramplink/ramp_link_app/internal/platform/notify"
)

// ContainerDeps carries everything the service layer needs from outside:
// persistence, change-notification streams and the external adapters.
// Generator and ReceiptStore may be nil when the matching feature is not
// configured; the owning service degrades to a validation error.
type ContainerDeps struct {
	Repos               portsrepo.RepositoryProvider
	TransactionEvents   <-chan notify.Event
	ConfigurationEvents <-chan notify.Event
	Generator           portsrepo.ContentGenerator
	ReceiptStore        portsrepo.ReceiptObjectStore
}

// NewServiceContainer wires all application services together.
func NewServiceContainer(cfg *config.Config, deps ContainerDeps, logger *slog.Logger) *portssvc.ServiceContainer {
	transactionSvc := NewTransactionService(deps.Repos.Transaction)
	projectionSvc := NewProjectionService(deps.Repos.Transaction, deps.TransactionEvents, logger)
	referenceSvc := NewReferenceService(deps.Repos.Reference, RampSyncConfig{
		APIURL:      cfg.RampAPIURL,
		AccessToken: cfg.RampAccessToken,
	}, deps.ConfigurationEvents, logger)
	suggestionSvc := NewSuggestionService(deps.Generator, referenceSvc, logger)
	receiptSvc := NewReceiptService(deps.ReceiptStore, transactionSvc, logger)

	return &portssvc.ServiceContainer{
		Transaction: transactionSvc,
		Projection:  projectionSvc,
		Reference:   referenceSvc,
		Suggestion:  suggestionSvc,
		Receipt:     receiptSvc,
	}
}
