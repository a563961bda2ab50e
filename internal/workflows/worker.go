package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-marketplace-v2/internal/webhook"
)

// WorkerCore defines the interface for ledger event workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// NotifyWebhookClients fans an event out to every active webhook client
	// subscribed to its type
	NotifyWebhookClients(ctx workflow.Context, event webhook.WebhookEvent) error

	// DeliverWebhook delivers an event to a single webhook client
	DeliverWebhook(ctx workflow.Context, clientID string, event webhook.WebhookEvent) error

	// ReportCustodyBreach records a custody divergence and alerts webhook clients
	ReportCustodyBreach(ctx workflow.Context, breach CustodyBreach) error
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor) WorkerCore {
	return &workerCore{
		executor: executor,
	}
}
