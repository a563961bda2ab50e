package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
)

func printReport(r *FanoutReport) {
	fmt.Println("WEBHOOK FAN-OUT REPORT")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Workflow:   %s\n", r.WorkflowID)
	fmt.Printf("Run:        %s\n", r.RunID)
	if r.EventID != "" {
		fmt.Printf("Event:      %s\n", r.EventID)
	}
	fmt.Printf("Status:     %s\n", statusLabel(r.Status))
	fmt.Printf("Fan-out:    %s\n", humanDuration(r.Duration))
	fmt.Println()

	total := len(r.Deliveries)
	fmt.Printf("Deliveries: %d total, %d delivered, %d failed, %d running\n",
		total, r.Delivered, r.Failed, r.Running)
	if total > 0 {
		fmt.Printf("Success:    %s\n", successRate(r.Delivered, total))
	}

	latencies := closedLatencies(r.Deliveries)
	if len(latencies) > 0 {
		fmt.Println()
		fmt.Printf("Latency:    min %s / p50 %s / p95 %s / max %s\n",
			humanDuration(latencies[0]),
			humanDuration(percentile(latencies, 0.50)),
			humanDuration(percentile(latencies, 0.95)),
			humanDuration(latencies[len(latencies)-1]))
	}

	if total == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("%-38s %-12s %s\n", "CLIENT", "STATUS", "LATENCY")
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range r.Deliveries {
		fmt.Printf("%-38s %-12s %s\n", d.ClientID, statusLabel(d.Status), humanDuration(d.Latency))
	}
}

func writeMarkdownReport(path string, r *FanoutReport) error {
	var b strings.Builder

	b.WriteString("# Webhook Fan-out Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Workflow:** `%s`\n", r.WorkflowID)
	fmt.Fprintf(&b, "- **Run:** `%s`\n", r.RunID)
	if r.EventID != "" {
		fmt.Fprintf(&b, "- **Event:** `%s`\n", r.EventID)
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", statusLabel(r.Status))
	fmt.Fprintf(&b, "- **Fan-out duration:** %s\n\n", humanDuration(r.Duration))

	total := len(r.Deliveries)
	b.WriteString("## Deliveries\n\n")
	fmt.Fprintf(&b, "| Total | Delivered | Failed | Running | Success |\n")
	fmt.Fprintf(&b, "|-------|-----------|--------|---------|--------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %s |\n\n",
		total, r.Delivered, r.Failed, r.Running, successRate(r.Delivered, total))

	latencies := closedLatencies(r.Deliveries)
	if len(latencies) > 0 {
		b.WriteString("## Latency\n\n")
		fmt.Fprintf(&b, "| Min | P50 | P95 | Max |\n")
		fmt.Fprintf(&b, "|-----|-----|-----|-----|\n")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
			humanDuration(latencies[0]),
			humanDuration(percentile(latencies, 0.50)),
			humanDuration(percentile(latencies, 0.95)),
			humanDuration(latencies[len(latencies)-1]))
	}

	if total > 0 {
		b.WriteString("## Per-client\n\n")
		b.WriteString("| Client | Status | Latency | Workflow |\n")
		b.WriteString("|--------|--------|---------|----------|\n")
		for _, d := range r.Deliveries {
			fmt.Fprintf(&b, "| `%s` | %s | %s | `%s` |\n",
				d.ClientID, statusLabel(d.Status), humanDuration(d.Latency), d.WorkflowID)
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func statusLabel(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "running"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "delivered"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "failed"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "terminated"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "timed out"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "canceled"
	case enums.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return "continued"
	default:
		return "unknown"
	}
}

func successRate(delivered, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(delivered)/float64(total)*100)
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
