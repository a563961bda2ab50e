package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/collection"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/temporal"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
	"github.com/feral-file/ff-marketplace-v2/internal/workflows"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between sweep cycles
)

// CustodySweeperConfig holds configuration for the custody sweeper
type CustodySweeperConfig struct {
	BatchSize      int           // Items to probe per cycle
	WorkerPoolSize int           // Concurrent probes
	RecheckAfter   time.Duration // Only probe items not checked within this window
}

// custodySweeper implements the Sweeper interface for custody reconciliation.
// Every available listing is expected to be held by the escrow account; the
// sweeper probes the collection contract and files a breach report when the
// reported holder diverges.
type custodySweeper struct {
	config                *CustodySweeperConfig
	store                 store.Store
	gateway               collection.CollectionGateway
	pool                  pond.Pool
	clock                 adapter.Clock
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
	running               atomic.Bool
	stopChan              chan struct{}
	stoppedCh             chan struct{}
}

// NewCustodySweeper creates a new custody sweeper
func NewCustodySweeper(
	config *CustodySweeperConfig,
	st store.Store,
	gateway collection.CollectionGateway,
	clock adapter.Clock,
	orchestrator temporal.TemporalOrchestrator,
	orchestratorTaskQueue string,
) Sweeper {
	return &custodySweeper{
		config:                config,
		store:                 st,
		gateway:               gateway,
		clock:                 clock,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
		stopChan:              make(chan struct{}),
		stoppedCh:             make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *custodySweeper) Name() string {
	return "custody-sweeper"
}

// Start begins the sweeper's main loop - continuously probes listings without interval
func (s *custodySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting custody sweeper (continuous mode)",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("recheck_after", s.config.RecheckAfter),
		zap.String("escrow_account", s.gateway.EscrowAddress()),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Custody sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Custody sweeper stop requested")
			s.cleanup()
			return nil
		default:
			// Run sweep cycle and immediately continue to next batch
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *custodySweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *custodySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping custody sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Custody sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Custody sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *custodySweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	// Get available items that are due for a probe (no locking, the upsert is
	// idempotent so overlapping sweepers only waste a probe)
	items, err := s.store.GetItemsForCustodyCheck(ctx, s.config.RecheckAfter, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get items for custody check: %w", err)
	}

	if len(items) == 0 {
		logger.InfoCtx(ctx, "No listings due for a custody check, waiting...")
		// Sleep briefly to avoid tight loop when nothing is due
		// Use context-aware sleep so we can be interrupted
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found listings to check", zap.Int("count", len(items)))

	// Track metrics
	var heldCount, divergedCount, probeErrorCount atomic.Int32

	// Submit all probes to worker pool
	for _, item := range items {
		s.pool.Submit(func() {
			s.checkItem(ctx, item, &heldCount, &divergedCount, &probeErrorCount)
		})
	}

	// Wait for all probes to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total_checked", len(items)),
		zap.Int32("held", heldCount.Load()),
		zap.Int32("diverged", divergedCount.Load()),
		zap.Int32("probe_errors", probeErrorCount.Load()),
	)

	// Sleep for a while to avoid tight loop
	// Use context-aware sleep so we can be interrupted
	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (s *custodySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}

// checkItem probes the collection for a single listing and records the outcome
func (s *custodySweeper) checkItem(ctx context.Context, item *schema.MarketItem, heldCount, divergedCount, probeErrorCount *atomic.Int32) {
	logger.InfoCtx(ctx, "Checking listing custody",
		zap.Uint64("item_id", item.ID),
		zap.String("collection_contract", item.CollectionContract),
		zap.String("token_id", item.TokenID),
	)

	holder, err := s.gateway.OwnerOf(ctx, item.CollectionContract, item.TokenID)
	if err != nil {
		// Transient node errors leave checked_at untouched so the item is
		// picked up again on the next cycle
		probeErrorCount.Add(1)
		logger.WarnCtx(ctx, "Custody probe failed, will retry next cycle",
			zap.Uint64("item_id", item.ID),
			zap.Error(err),
		)
		return
	}

	holderNorm, err := domain.NormalizeAddress(holder)
	if err != nil {
		probeErrorCount.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("collection reported unparseable holder: %w", err),
			zap.Uint64("item_id", item.ID),
			zap.String("holder", holder),
		)
		return
	}

	escrow, err := domain.NormalizeAddress(s.gateway.EscrowAddress())
	if err != nil {
		probeErrorCount.Add(1)
		logger.ErrorCtx(ctx, err, zap.Uint64("item_id", item.ID))
		return
	}

	if holderNorm == escrow {
		heldCount.Add(1)
		check := store.UpsertCustodyCheckInput{
			MarketItemID:  item.ID,
			Status:        schema.CustodyStatusHeld,
			HolderAddress: holderNorm,
			CheckedAt:     s.clock.Now(),
		}
		if err := s.recordCheckWithRetry(ctx, check); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: failed to record custody check after retries: %w", err),
				zap.Uint64("item_id", item.ID),
			)
		}
		return
	}

	divergedCount.Add(1)
	logger.WarnCtx(ctx, "Listing custody diverged",
		zap.Uint64("item_id", item.ID),
		zap.String("escrow_account", escrow),
		zap.String("holder", holderNorm),
	)

	// The breach workflow records the diverged check durably before alerting,
	// so the sweeper does not write it here
	s.reportBreach(ctx, item, escrow, holderNorm)
}

// recordCheckWithRetry upserts a custody check with exponential backoff retry
func (s *custodySweeper) recordCheckWithRetry(ctx context.Context, check store.UpsertCustodyCheckInput) error {
	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Second
	b.MaxInterval = 1 * time.Minute
	b.MaxElapsedTime = 10 * time.Minute // Total retry time limit
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	// Wrap with context to respect cancellation
	backoffWithContext := backoff.WithContext(b, ctx)

	operation := func() error {
		return s.store.UpsertCustodyCheck(ctx, check)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Custody check upsert failed, retrying",
			zap.Error(err),
			zap.Uint64("item_id", check.MarketItemID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError)
	if err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}

	return nil
}

// reportBreach files a custody breach report through the worker (fire-and-forget)
func (s *custodySweeper) reportBreach(ctx context.Context, item *schema.MarketItem, escrow, holder string) {
	breach := workflows.CustodyBreach{
		ItemID:             item.ID,
		CollectionContract: item.CollectionContract,
		TokenID:            item.TokenID,
		Seller:             item.Seller,
		EscrowAccount:      escrow,
		HolderAddress:      holder,
		Price:              item.Price,
		CheckedAt:          s.clock.Now(),
	}

	// One report workflow per item at a time; a diverged item that is probed
	// again before the report completes does not double-alert
	workflowOptions := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("custody-breach-%d", item.ID),
		TaskQueue:             s.orchestratorTaskQueue,
		WorkflowRunTimeout:    30 * time.Minute,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}

	w := workflows.NewWorkerCore(nil)
	workflowRun, err := s.orchestrator.ExecuteWorkflow(ctx, workflowOptions, w.ReportCustodyBreach, breach)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.Uint64("item_id", item.ID),
			zap.String("holder", holder),
		)
		return
	}

	// Log workflow start (handle nil workflowRun from tests)
	if workflowRun != nil {
		logger.InfoCtx(ctx, "Custody breach report workflow started",
			zap.Uint64("item_id", item.ID),
			zap.String("workflow_id", workflowRun.GetID()),
			zap.String("run_id", workflowRun.GetRunID()),
		)
	}
}
