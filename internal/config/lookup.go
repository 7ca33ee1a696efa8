package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/interlock/internal/flashfs"
	"github.com/muurk/interlock/internal/logging"
)

// Store looks up raw values in the config file on a flash filesystem.
// Every lookup takes the filesystem lock, opens the file and scans it from
// the top, so concurrent callers are serialized.
type Store struct {
	fs       *flashfs.Store
	path     string
	lockWait time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPath overrides the config file path (default DefaultPath).
func WithPath(path string) StoreOption {
	return func(s *Store) {
		s.path = path
	}
}

// WithLockWait bounds how long a lookup waits for the filesystem lock.
// flashfs.WaitForever (the default) waits until the context is done.
func WithLockWait(d time.Duration) StoreOption {
	return func(s *Store) {
		s.lockWait = d
	}
}

// NewStore returns a Store reading from fs.
func NewStore(fs *flashfs.Store, opts ...StoreOption) *Store {
	s := &Store{
		fs:       fs,
		path:     DefaultPath,
		lockWait: flashfs.WaitForever,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Lookup copies the value of key into out and returns the number of bytes
// copied. At most len(out)-1 bytes are copied and a zero byte always follows
// them when out is not empty.
//
// The returned error is a *Error: KindInvalidArg for an unknown key,
// KindFileSystem when the store is unusable, KindMissingConfigFile,
// KindBadConfigFile or KindTruncated for file-level problems, and
// KindMissingKey, KindMissingValue or KindTruncated for the value itself.
// On error the content of out must be ignored.
func (s *Store) Lookup(ctx context.Context, key Key, out []byte) (int, error) {
	if !key.Valid() {
		return 0, newError(KindInvalidArg, key, "unknown configuration key", nil)
	}

	var n int
	err := s.fs.WithSession(ctx, s.lockWait, func(sess *flashfs.Session) error {
		f, err := sess.Open(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logging.Error("Failed to open the config file for reading. Does it exist?",
					zap.String("path", s.path))
				return newError(KindMissingConfigFile, key, s.path+" does not exist", err)
			}
			return newError(KindFileSystem, key, "failed to open "+s.path, err)
		}

		n, err = s.scan(key, flashfs.NewLineReader(f), out)
		return err
	})

	if err != nil && KindOf(err) == KindUnknown {
		// Lock timeout, unmounted store or a failed close.
		err = newError(KindFileSystem, key, "flash filesystem unavailable", err)
	}

	logging.Debug("Config lookup",
		zap.Stringer("key", key),
		zap.Int("length", n),
		zap.Error(err),
	)
	return n, err
}

// Value is Lookup into a buffer large enough for any valid value.
func (s *Store) Value(ctx context.Context, key Key) (string, error) {
	buf := make([]byte, MaxValueLength+1)
	n, err := s.Lookup(ctx, key, buf)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// Entry is the outcome of looking up one key.
type Entry struct {
	Key   Key
	Value string
	Err   error
}

// Dump looks up every key in turn. Failures are kept per entry.
func (s *Store) Dump(ctx context.Context) []Entry {
	entries := make([]Entry, 0, numKeys)
	for _, key := range Keys() {
		value, err := s.Value(ctx, key)
		entries = append(entries, Entry{Key: key, Value: value, Err: err})
	}
	return entries
}

// scan reads lines until key is found or the file cannot be trusted further.
func (s *Store) scan(key Key, lr *flashfs.LineReader, out []byte) (int, error) {
	token := key.String()
	line := make([]byte, MaxLineLength)

	for lineNo := 1; ; lineNo++ {
		n, err := lr.ReadLine(line)
		if errors.Is(err, io.EOF) {
			return 0, newError(KindMissingKey, key, "key not found in "+s.path, nil)
		}
		if err != nil {
			return 0, newError(KindFileSystem, key, "failed to read "+s.path, err)
		}

		raw := line[:n]
		full := n == len(line)-1 && raw[n-1] != '\n'
		pair := ScanLine(raw)

		switch {
		case pair.Class == LineSkip:
			if full {
				// A comment longer than a line buffer is skipped whole.
				if err := lr.SkipLine(); err != nil {
					return 0, newError(KindFileSystem, key, "failed to read "+s.path, err)
				}
			}
			continue

		case full:
			logging.LogRawBytes("Config line too long", raw)
			return 0, newError(KindTruncated, key,
				fmt.Sprintf("line %d is longer than %d bytes", lineNo, len(line)-1), nil)

		case pair.Class == LineMalformed:
			logging.LogRawBytes("Config line without delimiter", raw)
			return 0, newError(KindBadConfigFile, key,
				fmt.Sprintf("line %d has no '=' delimiter", lineNo), nil)
		}

		if !equalFoldASCII(pair.Key, token) {
			continue
		}
		return copyValue(key, pair.Value, out)
	}
}

// copyValue copies value into out with strlcpy semantics.
func copyValue(key Key, value, out []byte) (int, error) {
	n := 0
	if len(out) > 0 {
		n = copy(out[:len(out)-1], value)
		out[n] = 0
	}

	switch {
	case len(value) >= len(out):
		return n, newError(KindTruncated, key,
			fmt.Sprintf("value is %d bytes, buffer holds %d", len(value), max(len(out)-1, 0)), nil)
	case len(value) == 0:
		return 0, newError(KindMissingValue, key, "value is empty", nil)
	}
	return n, nil
}
