package ingest

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNoArtifacts is returned by an Acquirer when the portal run produced no
// report files. Callers treat it exactly like "the operator uploaded
// nothing": an empty dataset, not a failure.
var ErrNoArtifacts = errors.New("no report artifacts available")

// Artifacts holds the two report streams produced by one acquisition run.
// Close both readers when done.
type Artifacts struct {
	Motion    io.ReadCloser
	Vibration io.ReadCloser
}

// Close closes both report streams.
func (a Artifacts) Close() error {
	err := a.Motion.Close()
	if cerr := a.Vibration.Close(); err == nil {
		err = cerr
	}
	return err
}

// Acquirer produces the motion and vibration report workbooks for a date
// range. The production implementation drives the monitoring portal's web
// UI and lives outside this module; the front end also satisfies this
// boundary directly from operator uploads.
type Acquirer interface {
	Acquire(ctx context.Context, from, to time.Time) (Artifacts, error)
}
