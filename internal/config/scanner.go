package config

import "bytes"

// LineClass is the outcome of scanning one line.
type LineClass int

const (
	// LineSkip is a blank or comment line.
	LineSkip LineClass = iota
	// LinePair is a KEY=VALUE line.
	LinePair
	// LineMalformed is a line with no '=' delimiter.
	LineMalformed
)

// Pair is a view of one scanned line. Key and Value alias the line buffer and
// are only set for LinePair.
type Pair struct {
	Class LineClass
	Key   []byte
	Value []byte
}

// ScanLine classifies a line and splits it on its first '='. Trailing CR and
// LF bytes are not part of the value.
func ScanLine(line []byte) Pair {
	if len(line) == 0 {
		return Pair{Class: LineSkip}
	}
	switch line[0] {
	case '#', ';', '\n', '\r':
		return Pair{Class: LineSkip}
	}

	line = bytes.TrimRight(line, "\r\n")

	key, value, ok := bytes.Cut(line, []byte{'='})
	if !ok {
		return Pair{Class: LineMalformed}
	}
	return Pair{Class: LinePair, Key: key, Value: value}
}
