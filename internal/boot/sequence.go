package boot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/interlock/internal/config"
	"github.com/muurk/interlock/internal/logging"
)

// ErrHalted wraps every error that stops the startup sequence.
var ErrHalted = errors.New("boot: startup halted")

// Mounter makes the flash filesystem usable. *flashfs.Store implements it.
type Mounter interface {
	Mount() (string, error)
}

// SnapshotLoader produces a validated configuration. *config.Loader implements it.
type SnapshotLoader interface {
	Load(ctx context.Context) (*config.Snapshot, error)
}

// StageFunc brings up one subsystem from the loaded configuration.
type StageFunc func(ctx context.Context, snap *config.Snapshot) error

type stage struct {
	name string
	run  StageFunc
}

// Report describes how far a sequence got.
type Report struct {
	MountStatus string
	Snapshot    *config.Snapshot
	Completed   []string
}

// Sequence is the ordered startup of the device.
type Sequence struct {
	fs     Mounter
	loader SnapshotLoader
	delay  time.Duration
	stages []stage
}

// NewSequence returns a sequence that mounts fs and loads with loader.
func NewSequence(fs Mounter, loader SnapshotLoader) *Sequence {
	return &Sequence{fs: fs, loader: loader}
}

// WithStartupDelay waits d before mounting, giving a serial console time to
// attach after reset.
func (s *Sequence) WithStartupDelay(d time.Duration) *Sequence {
	s.delay = d
	return s
}

// AddStage appends a bring-up stage. Stages run in the order added.
func (s *Sequence) AddStage(name string, fn StageFunc) *Sequence {
	s.stages = append(s.stages, stage{name: name, run: fn})
	return s
}

// Run executes the sequence. The report is always returned and shows what
// completed; the error wraps ErrHalted when startup must not proceed.
func (s *Sequence) Run(ctx context.Context) (*Report, error) {
	log := logging.Named("boot")
	report := &Report{}

	if s.delay > 0 {
		log.Info("Waiting before startup", zap.Duration("delay", s.delay))
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return report, fmt.Errorf("%w: %w", ErrHalted, ctx.Err())
		}
	}

	status, err := s.fs.Mount()
	report.MountStatus = status
	log.Info("File system status", zap.String("status", status))
	if err != nil {
		log.Error("Mount failed", zap.Error(err))
		return report, fmt.Errorf("%w: %s: %w", ErrHalted, status, err)
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		log.Error("Configuration invalid, refusing to continue", zap.Error(err))
		return report, fmt.Errorf("%w: %w", ErrHalted, err)
	}
	report.Snapshot = snap

	for _, st := range s.stages {
		if err := st.run(ctx, snap); err != nil {
			log.Error("Startup stage failed", zap.String("stage", st.name), zap.Error(err))
			return report, fmt.Errorf("%w: stage %s: %w", ErrHalted, st.name, err)
		}
		report.Completed = append(report.Completed, st.name)
		log.Debug("Startup stage complete", zap.String("stage", st.name))
	}

	return report, nil
}
