package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
	"github.com/feral-file/ff-marketplace-v2/internal/webhook"
)

// CustodyBreach is the divergence report the custody sweeper files when the
// collection no longer reports the escrow account as a listed token's holder.
type CustodyBreach struct {
	ItemID             uint64    `json:"item_id"`
	CollectionContract string    `json:"collection_contract"`
	TokenID            string    `json:"token_id"`
	Seller             string    `json:"seller"`
	EscrowAccount      string    `json:"escrow_account"`
	HolderAddress      string    `json:"holder_address"`
	Price              string    `json:"price,omitempty"`
	CheckedAt          time.Time `json:"checked_at"`
}

// ReportCustodyBreach durably records a custody divergence and fans the alert
// out to webhook clients. The record activity is an upsert, so a re-reported
// breach only refreshes the stored check.
func (w *workerCore) ReportCustodyBreach(ctx workflow.Context, breach CustodyBreach) error {
	logger.InfoWf(ctx, "Starting custody breach report",
		zap.Uint64("itemID", breach.ItemID),
		zap.String("holder", breach.HolderAddress))

	// Configure activity options
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 5,
			InitialInterval: 5 * time.Second,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)

	// Record the diverged check before anything else; the alert fan-out is
	// best-effort once the breach is on record
	check := store.UpsertCustodyCheckInput{
		MarketItemID:  breach.ItemID,
		Status:        schema.CustodyStatusDiverged,
		HolderAddress: breach.HolderAddress,
		CheckedAt:     breach.CheckedAt,
	}
	if err := workflow.ExecuteActivity(activityCtx, w.executor.RecordCustodyCheck, check).Get(activityCtx, nil); err != nil {
		return err
	}

	// Create the alert event with ULID for unique, time-sortable event ID
	alertID := ulid.MustNewDefault(workflow.Now(ctx))
	event := webhook.WebhookEvent{
		EventID:   alertID.String(),
		EventType: webhook.EventTypeCustodyDiverged,
		Timestamp: workflow.Now(ctx),
		Data: webhook.EventData{
			ItemID:             breach.ItemID,
			CollectionContract: breach.CollectionContract,
			TokenID:            breach.TokenID,
			Seller:             breach.Seller,
			Price:              breach.Price,
			EscrowAccount:      breach.EscrowAccount,
			Holder:             breach.HolderAddress,
		},
	}

	// Configure child workflow options (fire-and-forget)
	childWorkflowOptions := workflow.ChildWorkflowOptions{
		WorkflowID:            fmt.Sprintf("webhook-notify-%s-%s", event.EventType, event.EventID),
		WorkflowRunTimeout:    1 * time.Hour, // Allow time for all client deliveries and retries
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		ParentClosePolicy:     enums.PARENT_CLOSE_POLICY_ABANDON, // Don't wait for completion
	}
	childCtx := workflow.WithChildOptions(ctx, childWorkflowOptions)

	// Start notification workflow (don't wait for result)
	childWorkflow := workflow.ExecuteChildWorkflow(childCtx, w.NotifyWebhookClients, event)

	// Only verify it started successfully
	var childExecution workflow.Execution
	if err := childWorkflow.GetChildWorkflowExecution().Get(ctx, &childExecution); err != nil {
		logger.WarnWf(ctx, "Failed to start webhook notification workflow",
			zap.Uint64("itemID", breach.ItemID),
			zap.String("eventID", event.EventID),
			zap.Error(err))
		return nil
	}

	logger.InfoWf(ctx, "Custody breach alert workflow started",
		zap.Uint64("itemID", breach.ItemID),
		zap.String("workflowID", childExecution.ID))

	return nil
}
