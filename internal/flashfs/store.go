package flashfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"
)

// Mount status strings, as shown on the device console.
const (
	StatusOK          = "Filesystem OK"
	StatusMountFailed = "Unable to mount file system. Have you flashed the config?"
)

// WaitForever can be passed as a lock wait to block until ctx is done.
const WaitForever time.Duration = -1

var (
	// ErrNotMounted is returned when the store is used before a successful Mount.
	ErrNotMounted = errors.New("flashfs: filesystem not mounted")

	// ErrLockTimeout is returned when the filesystem lock could not be taken in time.
	ErrLockTimeout = errors.New("flashfs: timed out waiting for filesystem lock")
)

// File is a read-only handle to a file on the flash filesystem.
type File interface {
	io.Reader
	Name() string
}

// Store guards a flash filesystem behind a single lock.
type Store struct {
	fs      afero.Fs
	lock    *semaphore.Weighted
	mounted atomic.Bool
}

// NewStore wraps fs read-only. The store must be mounted before use.
func NewStore(fs afero.Fs) *Store {
	return &Store{
		fs:   afero.NewReadOnlyFs(fs),
		lock: semaphore.NewWeighted(1),
	}
}

// NewOsStore returns a store rooted at a directory holding an unpacked flash image.
func NewOsStore(root string) *Store {
	// BasePathFs rejects every path under a relative base such as ".".
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// Mount checks that the filesystem root is reachable and marks the store usable.
// The returned status is human readable and is meaningful on failure too.
// Mount never formats anything: a device without an image stays unmounted.
func (s *Store) Mount() (string, error) {
	ok, err := afero.DirExists(s.fs, "/")
	if err != nil {
		return StatusMountFailed, fmt.Errorf("%w: %w", ErrNotMounted, err)
	}
	if !ok {
		return StatusMountFailed, ErrNotMounted
	}

	s.mounted.Store(true)
	return StatusOK, nil
}

// Mounted reports whether Mount has succeeded.
func (s *Store) Mounted() bool {
	return s.mounted.Load()
}

// Acquire takes the filesystem lock, waiting at most maxWait. A zero wait tries
// once; a negative wait is bounded only by ctx. The caller must Release the
// returned session; prefer WithSession.
func (s *Store) Acquire(ctx context.Context, maxWait time.Duration) (*Session, error) {
	switch {
	case maxWait == 0:
		if !s.lock.TryAcquire(1) {
			return nil, ErrLockTimeout
		}
	default:
		if maxWait > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, maxWait)
			defer cancel()
		}
		if err := s.lock.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, err)
		}
	}

	if !s.mounted.Load() {
		s.lock.Release(1)
		return nil, ErrNotMounted
	}

	return &Session{store: s}, nil
}

// WithSession runs fn while holding the filesystem lock. Files opened through
// the session are closed and the lock is released before WithSession returns.
func (s *Store) WithSession(ctx context.Context, maxWait time.Duration, fn func(*Session) error) (err error) {
	sess, err := s.Acquire(ctx, maxWait)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, sess.Release())
	}()

	return fn(sess)
}

// Session is a held filesystem lock plus the files opened under it.
type Session struct {
	store    *Store
	files    []afero.File
	released bool
}

// Open opens name read-only. The file is owned by the session; callers must
// not close it themselves.
func (s *Session) Open(name string) (File, error) {
	if s.released {
		return nil, errors.New("flashfs: session already released")
	}

	f, err := s.store.fs.Open(name)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, f)
	return f, nil
}

// Release closes every file opened through the session and drops the lock.
// Calling it more than once is a no-op.
func (s *Session) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var err error
	for _, f := range s.files {
		err = multierr.Append(err, f.Close())
	}
	s.files = nil
	s.store.lock.Release(1)

	return err
}
