// Package pipeline orchestrates one aggregation-and-notification cycle:
// ingest the two report workbooks, hold the normalized dataset, and serve
// summaries and per-zone notifications from it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pulseforge/alarm-report-etl/internal/config"
	"github.com/pulseforge/alarm-report-etl/internal/domain"
	"github.com/pulseforge/alarm-report-etl/internal/ingest"
	"github.com/pulseforge/alarm-report-etl/internal/notify"
	"github.com/pulseforge/alarm-report-etl/internal/observability"
	"github.com/pulseforge/alarm-report-etl/internal/registry"
	"github.com/pulseforge/alarm-report-etl/internal/summary"
)

// ErrTransportDisabled is returned by Notify when no delivery transport is
// configured.
var ErrTransportDisabled = errors.New("delivery transport not configured")

// Exporter publishes a normalized dataset downstream. Optional; a nil
// exporter disables export.
type Exporter interface {
	ExportRecords(ctx context.Context, records []domain.EventRecord, ingestedAt time.Time) error
}

// IngestResult summarizes one report-pair ingest.
type IngestResult struct {
	MotionRows    int       `json:"motion_rows"`
	VibrationRows int       `json:"vibration_rows"`
	Records       int       `json:"records"`
	SkippedRows   int       `json:"skipped_rows"`
	IngestedAt    time.Time `json:"ingested_at"`
}

// NotifyRequest selects which zones to alert and from when. When
// Prioritized is true the configured priority list is used and Zones is
// ignored. A nil Since defaults to the start of the current day.
type NotifyRequest struct {
	Prioritized bool       `json:"prioritized"`
	Zones       []string   `json:"zones"`
	Since       *time.Time `json:"since"`
}

// Pipeline is the front end's entry point into the core. One dataset (the
// last ingested report pair) is held in memory at a time, same as the
// operator's session in the old dashboard.
type Pipeline struct {
	zones      config.Zones
	registry   *registry.Registry
	dispatcher *notify.Dispatcher
	exporter   Exporter
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu         sync.RWMutex
	records    []domain.EventRecord
	ingestedAt time.Time
}

// New wires a pipeline. dispatcher may be nil when delivery is disabled;
// exporter may be nil when export is disabled.
func New(zones config.Zones, reg *registry.Registry, dispatcher *notify.Dispatcher, exporter Exporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		zones:      zones,
		registry:   reg,
		dispatcher: dispatcher,
		exporter:   exporter,
		logger:     logger,
		metrics:    metrics,
	}
}

// IngestReports extracts and normalizes one motion/vibration report pair
// and replaces the held dataset. The previous dataset stays in place when
// either workbook fails to parse.
func (p *Pipeline) IngestReports(ctx context.Context, motion, vibration io.Reader) (IngestResult, error) {
	start := time.Now()

	motionRows, err := ingest.ReadReport(motion)
	if err != nil {
		return IngestResult{}, fmt.Errorf("motion report: %w", err)
	}
	vibrationRows, err := ingest.ReadReport(vibration)
	if err != nil {
		return IngestResult{}, fmt.Errorf("vibration report: %w", err)
	}

	records, skipped := domain.NormalizeReports(motionRows, vibrationRows)
	ingestedAt := domain.Now()

	p.mu.Lock()
	p.records = records
	p.ingestedAt = ingestedAt
	p.mu.Unlock()

	p.metrics.ReportsIngested.Inc()
	p.metrics.RecordsNormalized.Add(float64(len(records)))
	p.metrics.RowsSkipped.Add(float64(skipped))
	p.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("reports ingested",
		"motion_rows", len(motionRows),
		"vibration_rows", len(vibrationRows),
		"records", len(records),
		"skipped_rows", skipped,
	)

	if p.exporter != nil {
		if err := p.exporter.ExportRecords(ctx, records, ingestedAt); err != nil {
			// Export is best-effort; the dataset is already live.
			p.logger.Warn("record export failed", "error", err)
		} else {
			p.metrics.RecordsExported.Add(float64(len(records)))
		}
	}

	return IngestResult{
		MotionRows:    len(motionRows),
		VibrationRows: len(vibrationRows),
		Records:       len(records),
		SkippedRows:   skipped,
		IngestedAt:    ingestedAt,
	}, nil
}

// IngestAcquired runs one acquisition and ingests whatever it produced. An
// acquirer reporting ErrNoArtifacts clears the held dataset instead of
// failing: an empty portal run means there is nothing to report.
func (p *Pipeline) IngestAcquired(ctx context.Context, acq ingest.Acquirer, from, to time.Time) (IngestResult, error) {
	artifacts, err := acq.Acquire(ctx, from, to)
	if errors.Is(err, ingest.ErrNoArtifacts) {
		ingestedAt := domain.Now()
		p.mu.Lock()
		p.records = nil
		p.ingestedAt = ingestedAt
		p.mu.Unlock()
		p.logger.Info("acquisition produced no reports", "from", from, "to", to)
		return IngestResult{IngestedAt: ingestedAt}, nil
	}
	if err != nil {
		return IngestResult{}, fmt.Errorf("acquire reports: %w", err)
	}
	defer artifacts.Close() //nolint:errcheck

	return p.IngestReports(ctx, artifacts.Motion, artifacts.Vibration)
}

// Summary aggregates the held dataset with the since bound and presents it
// in zone priority order. A nil since defaults to the start of today. An
// empty dataset yields an empty summary, not an error.
func (p *Pipeline) Summary(since *time.Time) []summary.ZoneSummary {
	if since == nil {
		s := domain.StartOfToday()
		since = &s
	}

	p.mu.RLock()
	records := p.records
	p.mu.RUnlock()

	counts := summary.Aggregate(records, since)
	return summary.Present(counts, p.zones.PriorityZones, p.zones.HighThreshold)
}

// Notify dispatches alerts per the request and reports one outcome per
// zone. Zones with nothing to report are skipped; a failed send never stops
// the remaining zones.
func (p *Pipeline) Notify(ctx context.Context, req NotifyRequest) ([]notify.ZoneOutcome, error) {
	if p.dispatcher == nil {
		return nil, ErrTransportDisabled
	}

	zones := req.Zones
	if req.Prioritized {
		zones = p.zones.PriorityZones
	}
	if len(zones) == 0 {
		return nil, errors.New("no zones selected")
	}

	since := domain.StartOfToday()
	if req.Since != nil {
		since = *req.Since
	}

	p.mu.RLock()
	records := p.records
	p.mu.RUnlock()

	return p.dispatcher.NotifyZones(ctx, zones, records, since), nil
}

// UpsertOwner updates or inserts the owner of a zone through the registry.
func (p *Pipeline) UpsertOwner(zone, owner string) error {
	if err := p.registry.Upsert(zone, owner); err != nil {
		p.metrics.RegistryUpserts.WithLabelValues("failure").Inc()
		return err
	}
	p.metrics.RegistryUpserts.WithLabelValues("success").Inc()
	p.logger.Info("zone owner updated", "zone", zone, "owner", owner)
	return nil
}

// Owner returns the registered owner of a zone, or the sentinel.
func (p *Pipeline) Owner(zone string) string {
	return p.registry.Lookup(zone)
}

// CheckReadiness reports whether the pipeline can serve requests. Startup
// is synchronous (config, zones file, registry), so a constructed pipeline
// is always ready; the probe exists for the deployment surface.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	return nil
}
