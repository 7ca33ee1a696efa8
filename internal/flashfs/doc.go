// Package flashfs provides locked, read-only access to the device's flash
// filesystem and a line reader for streaming text files off it.
//
// The flash partition is modelled as an afero.Fs. On the device this is the
// block-device backed filesystem; on a workstation it is a directory holding an
// unpacked flash image (see NewOsStore), and in tests it is an in-memory
// filesystem. The Store always wraps the filesystem read-only.
//
// # Locking
//
// The filesystem is a single shared resource guarded by one lock. Callers never
// take the lock directly; they use a scoped session:
//
//	err := store.WithSession(ctx, time.Second, func(s *flashfs.Session) error {
//	    f, err := s.Open("/config.txt")
//	    if err != nil {
//	        return err
//	    }
//	    lr := flashfs.NewLineReader(f)
//	    // ...
//	})
//
// Every file opened through a session is closed, and the lock released, when
// the callback returns, whatever the outcome. A negative wait blocks until the
// lock is free or ctx is done. A failed acquisition reports ErrLockTimeout; a
// store that was never mounted reports ErrNotMounted.
//
// # Line Endings
//
// LineReader accepts LF, CRLF and bare CR terminators and always hands back a
// single '\n'. A CR is resolved with a one-byte lookahead that is kept in the
// reader, so the underlying file never needs to seek.
package flashfs
