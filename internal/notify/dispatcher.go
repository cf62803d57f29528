package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
	"github.com/pulseforge/alarm-report-etl/internal/observability"
	"github.com/pulseforge/alarm-report-etl/internal/registry"
	"github.com/pulseforge/alarm-report-etl/internal/summary"
)

// Transport delivers one composed message. The concrete client is
// constructed with its destination and credential; the dispatcher only
// supplies message text.
type Transport interface {
	Send(ctx context.Context, message string) error
}

// Status is the outcome of one zone's dispatch.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped" // nothing to report after filtering
	StatusFailed  Status = "failed"
)

// ZoneOutcome reports what happened for one zone. Error carries the
// transport diagnostic when Status is failed.
type ZoneOutcome struct {
	Zone   string `json:"zone"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Dispatcher runs the per-zone notification cycle.
type Dispatcher struct {
	transport Transport
	registry  *registry.Registry
	tpl       Template
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewDispatcher wires a dispatcher. The registry provides zone owners; the
// template provides the fixed message text.
func NewDispatcher(transport Transport, reg *registry.Registry, tpl Template, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		registry:  reg,
		tpl:       tpl,
		logger:    logger,
		metrics:   metrics,
	}
}

// NotifyZones aggregates the records of each named zone with the since
// bound, composes an alert for every zone that has something to report, and
// sends it. Each zone gets its own outcome: a failed send never aborts the
// remaining zones, and a zone with no matching records is skipped rather
// than treated as an error.
func (d *Dispatcher) NotifyZones(ctx context.Context, zones []string, records []domain.EventRecord, since time.Time) []ZoneOutcome {
	outcomes := make([]ZoneOutcome, 0, len(zones))
	for _, zone := range zones {
		outcomes = append(outcomes, d.notifyZone(ctx, zone, records, since))
	}
	return outcomes
}

func (d *Dispatcher) notifyZone(ctx context.Context, zone string, records []domain.EventRecord, since time.Time) ZoneOutcome {
	counts := summary.Aggregate(summary.FilterZone(records, zone), &since)
	if len(counts) == 0 {
		d.logger.Debug("nothing to notify", "zone", zone, "since", since)
		d.metrics.Notifications.WithLabelValues(string(StatusSkipped)).Inc()
		return ZoneOutcome{Zone: zone, Status: StatusSkipped}
	}

	owner := d.registry.Lookup(zone)
	message := Compose(zone, counts, since, owner, d.tpl)

	if err := d.transport.Send(ctx, message); err != nil {
		d.logger.Error("alert delivery failed", "zone", zone, "error", err)
		d.metrics.Notifications.WithLabelValues(string(StatusFailed)).Inc()
		return ZoneOutcome{Zone: zone, Status: StatusFailed, Error: err.Error()}
	}

	d.logger.Info("alert delivered", "zone", zone, "sites", len(counts), "owner", owner)
	d.metrics.Notifications.WithLabelValues(string(StatusSent)).Inc()
	return ZoneOutcome{Zone: zone, Status: StatusSent}
}
