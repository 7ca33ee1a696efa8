package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/interlock/internal/logging"
)

// Reporter receives human-readable diagnostic lines after a failed load.
type Reporter interface {
	Report(line string)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(line string)

// Report calls f(line).
func (f ReporterFunc) Report(line string) {
	f(line)
}

// Lookuper retrieves raw values. *Store implements it.
type Lookuper interface {
	Lookup(ctx context.Context, key Key, out []byte) (int, error)
}

// LoadError is returned by Load when any key failed.
type LoadError struct {
	Status *Status
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config load failed with %d error(s): %v", e.Status.Len(), e.Status.Err())
}

// Unwrap exposes every per-key error to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	return e.Status.Errors()
}

// Loader reads every key once and builds a Snapshot.
type Loader struct {
	store    Lookuper
	reporter Reporter
}

// NewLoader returns a Loader. A nil reporter discards diagnostics.
func NewLoader(store Lookuper, reporter Reporter) *Loader {
	if reporter == nil {
		reporter = ReporterFunc(func(string) {})
	}
	return &Loader{store: store, reporter: reporter}
}

// Load attempts every key, even after failures, so that one failed load
// reports every problem in the file. The snapshot is returned only when
// nothing failed; otherwise the error is a *LoadError.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		b       snapshotBuilder
		status  Status
		scratch [MaxValueLength + 1]byte
	)

	for _, key := range Keys() {
		n, err := l.store.Lookup(ctx, key, scratch[:])
		if err == nil {
			err = b.apply(key, string(scratch[:n]))
		}
		if err != nil {
			status.Record(err)
			l.reporter.Report(fmt.Sprintf("Error reading config value for %s: %s", key, KindOf(err).Code()))
			logging.Debug("Config key failed", zap.Stringer("key", key), zap.Error(err))
		}
	}

	if !status.Empty() {
		l.reporter.Report("The following errors were encountered when reading the config file:")
		for _, kind := range status.Kinds() {
			l.reporter.Report("  - " + kind.Code())
		}
		return nil, &LoadError{Status: &status}
	}

	snap, err := b.build()
	if err != nil {
		return nil, err
	}
	logging.Info("Configuration loaded",
		zap.Stringer("device_type", snap.DeviceType()),
		zap.String("device_name", snap.DeviceName()),
		zap.Uint16("config_version", snap.ConfigVersion()),
	)
	return snap, nil
}
