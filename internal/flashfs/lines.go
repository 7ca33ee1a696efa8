package flashfs

import (
	"errors"
	"fmt"
	"io"
)

// ErrRead is wrapped around any failure of the underlying reader.
var ErrRead = errors.New("flashfs: read failed")

// maxEmptyReads bounds how often a reader may return (0, nil) in a row.
const maxEmptyReads = 100

// LineReader reads newline-normalized lines one byte at a time.
//
// A '\r' needs one byte of lookahead to tell CR from CRLF. When the lookahead
// is not '\n' it is parked in the reader and handed out by the next read.
type LineReader struct {
	r   io.Reader
	one [1]byte

	pending    byte
	hasPending bool

	// err is the error the underlying reader returned together with its last
	// byte. It is reported on the following read.
	err error
}

// NewLineReader returns a LineReader reading from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: r}
}

// ReadLine fills buf with the next line and returns the number of bytes
// written. At most len(buf)-1 bytes are read and a zero byte is always stored
// right after them, so a line that does not fit comes back in pieces.
//
// Any of "\n", "\r\n" or "\r" ends a line and is stored as a single '\n'.
// ReadLine returns io.EOF when the file is exhausted before a single byte was
// read, and an error wrapping ErrRead if the underlying read fails.
func (lr *LineReader) ReadLine(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, io.ErrShortBuffer
	}

	n := 0
	for n < len(buf)-1 {
		c, err := lr.readByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			buf[0] = 0
			return 0, readError(err)
		}

		if c == '\r' {
			if err := lr.swallowLF(); err != nil {
				buf[0] = 0
				return 0, err
			}
			buf[n] = '\n'
			n++
			break
		}

		buf[n] = c
		n++
		if c == '\n' {
			break
		}
	}

	buf[n] = 0
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// SkipLine discards input up to and including the next line terminator, or
// up to end of file.
func (lr *LineReader) SkipLine() error {
	for {
		c, err := lr.readByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return readError(err)
		}

		switch c {
		case '\n':
			return nil
		case '\r':
			return lr.swallowLF()
		}
	}
}

// swallowLF consumes the '\n' of a CRLF pair. Anything else is parked.
func (lr *LineReader) swallowLF() error {
	next, err := lr.readByte()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return readError(err)
	case next != '\n':
		lr.pending = next
		lr.hasPending = true
	}
	return nil
}

func (lr *LineReader) readByte() (byte, error) {
	if lr.hasPending {
		lr.hasPending = false
		return lr.pending, nil
	}
	if lr.err != nil {
		return 0, lr.err
	}

	for i := 0; i < maxEmptyReads; i++ {
		n, err := lr.r.Read(lr.one[:])
		if n == 1 {
			lr.err = err
			return lr.one[0], nil
		}
		if err != nil {
			lr.err = err
			return 0, err
		}
	}

	lr.err = io.ErrNoProgress
	return 0, lr.err
}

func readError(err error) error {
	return fmt.Errorf("%w: %w", ErrRead, err)
}
