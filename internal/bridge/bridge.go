package bridge

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/temporal"
	"github.com/feral-file/ff-marketplace-v2/internal/webhook"
	"github.com/feral-file/ff-marketplace-v2/internal/workflows"
)

// DEFAULT_MAX_CONSECUTIVE_FAILURES trips the circuit breaker when every
// recent message failed to forward, which points at Temporal being down
// rather than at bad messages
const DEFAULT_MAX_CONSECUTIVE_FAILURES = 25

// Config holds the configuration for the event bridge
type Config struct {
	URL               string
	StreamName        string
	ConsumerName      string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectionName    string
	AckWaitTimeout    time.Duration
	MaxDeliver        int
	TemporalTaskQueue string

	// MaxConsecutiveFailures stops the bridge after this many forward
	// failures in a row; zero selects the default
	MaxConsecutiveFailures int
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run starts the event bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc           adapter.NatsConn
	js           adapter.JetStream
	orchestrator temporal.TemporalOrchestrator
	json         adapter.JSON
	config       Config

	failures atomic.Int64
	fatal    chan error
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	orchestrator temporal.TemporalOrchestrator,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	if cfg.MaxConsecutiveFailures <= 0 {
		cfg.MaxConsecutiveFailures = DEFAULT_MAX_CONSECUTIVE_FAILURES
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	b := &bridge{
		nc:           nc,
		js:           js,
		orchestrator: orchestrator,
		json:         jsonAdapter,
		config:       cfg,
		fatal:        make(chan error, 1),
	}

	return b, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	// Subscribe to all ledger event subjects
	subject := "market.events.>"

	// Create or get consumer
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: subject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	// Process messages
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case err := <-b.fatal:
			return fmt.Errorf("too many consecutive forward failures: %w", err)
		case msg := <-msgChan:
			// Spawn goroutine to handle message asynchronously
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	// Get metadata for logging
	var deliveryCount uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveryCount = metadata.NumDelivered
	}

	// Parse event
	var event domain.MarketEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if !domain.IsValidMarketEventType(event.EventType) || event.EventID == "" {
		logger.Warn("Dropping malformed event",
			zap.String("eventID", event.EventID),
			zap.String("eventType", string(event.EventType)),
		)
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	logger.Info("Received event",
		zap.String("eventID", event.EventID),
		zap.String("eventType", string(event.EventType)),
		zap.Uint64("itemID", event.ItemID),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	// Forward to the webhook notification workflow
	if err := b.forwardToWorker(ctx, &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to forward event to worker"))

		n := b.failures.Add(1)
		if n >= int64(b.config.MaxConsecutiveFailures) {
			select {
			case b.fatal <- err:
			default:
			}
		}

		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	b.failures.Store(0)

	// ACK message after successful processing
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// forwardToWorker starts the webhook notification workflow for the event.
// The workflow ID is derived from the event ID so a redelivered message never
// notifies clients twice.
func (b *bridge) forwardToWorker(ctx context.Context, event *domain.MarketEvent) error {
	w := workflows.NewWorkerCore(nil)

	opt := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("notify-webhook-%s", event.EventID),
		TaskQueue:             b.config.TemporalTaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowRunTimeout:    30 * time.Minute,
	}
	_, err := b.orchestrator.ExecuteWorkflow(ctx, opt, w.NotifyWebhookClients, toWebhookEvent(event))
	if err != nil {
		return fmt.Errorf("failed to execute workflow: %w", err)
	}

	logger.Info("Event forwarded to worker",
		zap.String("eventID", event.EventID),
		zap.String("eventType", string(event.EventType)),
	)

	return nil
}

// toWebhookEvent converts a journal event into the webhook envelope
func toWebhookEvent(event *domain.MarketEvent) webhook.WebhookEvent {
	return webhook.WebhookEvent{
		EventID:   event.EventID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
		Data: webhook.EventData{
			ItemID:             event.ItemID,
			CollectionContract: event.CollectionContract,
			TokenID:            event.TokenID,
			Seller:             event.Seller,
			Owner:              event.Owner,
			Buyer:              event.Buyer,
			Price:              event.Price,
		},
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
