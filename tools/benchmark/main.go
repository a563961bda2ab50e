// Command benchmark profiles the webhook fan-out for a single market event.
//
// Given an event ID (or the notification workflow ID directly), it locates the
// NotifyWebhookClients execution, collects every DeliverWebhook child spawned
// for it, and reports per-client delivery outcomes and latency percentiles.
// It polls until the notification workflow and all deliveries have closed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "default"

	notifyWorkflowIDPrefix   = "webhook-notify-"
	deliveryWorkflowIDPrefix = "webhook-delivery-"
)

// Options is the resolved CLI configuration.
type Options struct {
	TemporalHost string
	Namespace    string
	WorkflowID   string
	EventID      string
	OutputFile   string
	PollInterval time.Duration
	QueryTimeout time.Duration
	PageSize     int
}

// Delivery is one DeliverWebhook execution attributed to a webhook client.
type Delivery struct {
	ClientID   string
	WorkflowID string
	RunID      string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Latency    time.Duration
}

// FanoutReport aggregates one notification workflow and its deliveries.
type FanoutReport struct {
	WorkflowID string
	RunID      string
	EventID    string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Duration   time.Duration

	Deliveries []Delivery
	Delivered  int
	Failed     int
	Running    int
}

func main() {
	opts := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\ninterrupted")
		cancel()
	}()

	c, err := client.Dial(client.Options{
		HostPort:  opts.TemporalHost,
		Namespace: opts.Namespace,
	})
	if err != nil {
		fmt.Printf("failed to connect to Temporal at %s: %v\n", opts.TemporalHost, err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected to %s (namespace: %s)\n", opts.TemporalHost, opts.Namespace)
	fmt.Printf("Fan-out workflow: %s\n\n", opts.WorkflowID)

	var report *FanoutReport
	for {
		report, err = collectFanout(ctx, c, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("failed to collect fan-out: %v\n", err)
			os.Exit(1)
		}

		if fanoutSettled(report) {
			break
		}

		fmt.Printf("\rwaiting for deliveries... (%d/%d closed)   ",
			len(report.Deliveries)-report.Running, len(report.Deliveries))

		timer := time.NewTimer(opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			fmt.Println("\n\nPARTIAL RESULTS")
			printReport(report)
			return
		case <-timer.C:
		}
	}

	fmt.Println()
	printReport(report)

	if opts.OutputFile != "" {
		if err := writeMarkdownReport(opts.OutputFile, report); err != nil {
			fmt.Printf("failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", opts.OutputFile)
	}
}

func parseFlags() *Options {
	opts := &Options{}

	flag.StringVar(&opts.TemporalHost, "temporal-host",
		envOrDefault("MARKETPLACE_TEMPORAL_HOSTPORT", defaultTemporalHost), "Temporal host address")
	flag.StringVar(&opts.Namespace, "namespace",
		envOrDefault("MARKETPLACE_TEMPORAL_NAMESPACE", defaultNamespace), "Temporal namespace")
	flag.StringVar(&opts.WorkflowID, "workflow-id", "", "NotifyWebhookClients workflow ID (webhook-notify-<type>-<event-id>)")

	eventID := flag.String("event-id", "", "market event ID (ULID); resolves the workflow ID together with -event-type")
	eventType := flag.String("event-type", "market.item.sold", "market event type, used with -event-id")
	pollSeconds := flag.Int("poll", 2, "seconds between polls while deliveries are still running")
	timeoutSeconds := flag.Int("query-timeout", 30, "per-query timeout in seconds")
	flag.IntVar(&opts.PageSize, "page-size", 500, "page size for Temporal list queries")
	flag.StringVar(&opts.OutputFile, "output", "", "markdown report path (optional)")
	flag.Parse()

	if opts.WorkflowID == "" && *eventID != "" {
		opts.WorkflowID = notifyWorkflowID(*eventType, *eventID)
	}
	if opts.WorkflowID == "" {
		fmt.Println("either -workflow-id or -event-id is required")
		flag.Usage()
		os.Exit(1)
	}

	opts.EventID = eventIDFromWorkflowID(opts.WorkflowID)
	opts.PollInterval = time.Duration(*pollSeconds) * time.Second
	opts.QueryTimeout = time.Duration(*timeoutSeconds) * time.Second
	if opts.PageSize <= 0 || opts.PageSize > 1000 {
		opts.PageSize = 500
	}

	return opts
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// notifyWorkflowID rebuilds the workflow ID the event bridge and the custody
// reporter assign to a notification run.
func notifyWorkflowID(eventType, eventID string) string {
	return fmt.Sprintf("%s%s-%s", notifyWorkflowIDPrefix, eventType, eventID)
}

// eventIDFromWorkflowID recovers the event ID from a notification workflow ID.
// The event ID is the segment after the last dash (ULIDs contain no dashes).
func eventIDFromWorkflowID(workflowID string) string {
	idx := strings.LastIndex(workflowID, "-")
	if idx < 0 || idx == len(workflowID)-1 {
		return ""
	}
	return workflowID[idx+1:]
}

// deliveryClientID recovers the webhook client ID from a delivery workflow ID
// of the form webhook-delivery-<client-id>-<event-id>.
func deliveryClientID(workflowID, eventID string) string {
	id := strings.TrimPrefix(workflowID, deliveryWorkflowIDPrefix)
	if eventID != "" {
		id = strings.TrimSuffix(id, "-"+eventID)
	}
	return id
}

func collectFanout(ctx context.Context, c client.Client, opts *Options) (*FanoutReport, error) {
	parent, err := findExecution(ctx, c, opts, fmt.Sprintf("WorkflowId = '%s'", opts.WorkflowID))
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("workflow %s not found", opts.WorkflowID)
	}

	report := &FanoutReport{
		WorkflowID: parent.Execution.WorkflowId,
		RunID:      parent.Execution.RunId,
		EventID:    opts.EventID,
		Status:     parent.Status,
		StartTime:  parent.StartTime.AsTime(),
	}
	if parent.CloseTime != nil {
		ct := parent.CloseTime.AsTime()
		report.CloseTime = &ct
		report.Duration = ct.Sub(report.StartTime)
	} else {
		report.Duration = time.Since(report.StartTime)
	}

	// Deliveries are started with ParentClosePolicy ABANDON, so they outlive
	// the notification workflow; list them by parent rather than by history.
	query := fmt.Sprintf("ParentWorkflowId = '%s' AND ParentRunId = '%s'",
		parent.Execution.WorkflowId, parent.Execution.RunId)

	var pageToken []byte
	for {
		queryCtx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     opts.Namespace,
			Query:         query,
			PageSize:      int32(opts.PageSize), //nolint:gosec
			NextPageToken: pageToken,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to list deliveries: %w", err)
		}

		for _, exec := range resp.Executions {
			report.addDelivery(exec)
		}

		pageToken = resp.NextPageToken
		if len(pageToken) == 0 {
			break
		}
	}

	sort.Slice(report.Deliveries, func(i, j int) bool {
		return report.Deliveries[i].ClientID < report.Deliveries[j].ClientID
	})

	return report, nil
}

func findExecution(ctx context.Context, c client.Client, opts *Options, query string) (*workflowpb.WorkflowExecutionInfo, error) {
	queryCtx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	defer cancel()

	resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
		Namespace: opts.Namespace,
		Query:     query,
		PageSize:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow: %w", err)
	}
	if len(resp.Executions) == 0 {
		return nil, nil
	}
	return resp.Executions[0], nil
}

func (r *FanoutReport) addDelivery(exec *workflowpb.WorkflowExecutionInfo) {
	d := Delivery{
		ClientID:   deliveryClientID(exec.Execution.WorkflowId, r.EventID),
		WorkflowID: exec.Execution.WorkflowId,
		RunID:      exec.Execution.RunId,
		Status:     exec.Status,
		StartTime:  exec.StartTime.AsTime(),
	}
	if exec.CloseTime != nil {
		ct := exec.CloseTime.AsTime()
		d.CloseTime = &ct
		d.Latency = ct.Sub(d.StartTime)
	} else {
		d.Latency = time.Since(d.StartTime)
	}

	switch exec.Status {
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		r.Delivered++
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		r.Running++
	default:
		r.Failed++
	}

	r.Deliveries = append(r.Deliveries, d)
}

// fanoutSettled reports whether the notification workflow and every delivery
// it spawned have reached a terminal state.
func fanoutSettled(r *FanoutReport) bool {
	return r.Status != enums.WORKFLOW_EXECUTION_STATUS_RUNNING && r.Running == 0
}

// closedLatencies returns the latencies of terminal deliveries, sorted.
func closedLatencies(deliveries []Delivery) []time.Duration {
	var out []time.Duration
	for _, d := range deliveries {
		if d.CloseTime != nil {
			out = append(out, d.Latency)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// percentile returns the q-th percentile (0 < q <= 1) of sorted durations.
func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q*float64(len(sorted))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
