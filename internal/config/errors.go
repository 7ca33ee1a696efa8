package config

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes config retrieval failures.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not come from this package.
	KindUnknown ErrorKind = iota
	// KindInvalidArg means the caller asked for a key that does not exist.
	KindInvalidArg
	// KindMissingKey means the key is absent from the config file.
	KindMissingKey
	// KindBadConfigFile means a line without a '=' delimiter was met.
	KindBadConfigFile
	// KindMissingValue means the key is present but its value is empty.
	KindMissingValue
	// KindMissingConfigFile means the config file does not exist.
	KindMissingConfigFile
	// KindFileSystem means the filesystem was unmounted, locked or unreadable.
	KindFileSystem
	// KindTruncated means a value or line did not fit its buffer.
	KindTruncated
	// KindInvalidValue means the value failed type, range or enum validation.
	KindInvalidValue
)

// String returns a human-readable name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArg:
		return "Invalid Argument"
	case KindMissingKey:
		return "Missing Key"
	case KindBadConfigFile:
		return "Bad Config File"
	case KindMissingValue:
		return "Missing Value"
	case KindMissingConfigFile:
		return "Missing Config File"
	case KindFileSystem:
		return "File System Error"
	case KindTruncated:
		return "Truncated"
	case KindInvalidValue:
		return "Invalid Value"
	case KindUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Code returns the stable upper-case identifier used in device logs.
func (k ErrorKind) Code() string {
	switch k {
	case KindInvalidArg:
		return "CONFIG_ERR_INVALID_ARG"
	case KindMissingKey:
		return "CONFIG_ERR_MISSING_KEY"
	case KindBadConfigFile:
		return "CONFIG_ERR_BAD_CONFIG_FILE"
	case KindMissingValue:
		return "CONFIG_ERR_MISSING_VALUE"
	case KindMissingConfigFile:
		return "CONFIG_ERR_MISSING_CONFIG_FILE"
	case KindFileSystem:
		return "CONFIG_ERR_FILE_SYSTEM"
	case KindTruncated:
		return "CONFIG_ERR_TRUNCATED"
	case KindInvalidValue:
		return "CONFIG_ERR_INVALID_VALUE"
	default:
		return "INVALID"
	}
}

// Error is a failure to retrieve or convert one key.
type Error struct {
	Kind    ErrorKind // Category of error
	Key     Key       // Key being read
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", e.Kind, e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Key, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, key Key, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Key:     key,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries a config error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsMissingKey checks if the key was absent from the config file
func IsMissingKey(err error) bool {
	return IsKind(err, KindMissingKey)
}

// IsTruncated checks if a value or line did not fit its buffer
func IsTruncated(err error) bool {
	return IsKind(err, KindTruncated)
}

// IsFileSystemError checks if the flash filesystem could not be used
func IsFileSystemError(err error) bool {
	return IsKind(err, KindFileSystem) || IsKind(err, KindMissingConfigFile)
}

// IsInvalidValue checks if a value failed validation
func IsInvalidValue(err error) bool {
	return IsKind(err, KindInvalidValue)
}

// TroubleshootingHint returns operator advice for an error kind.
func TroubleshootingHint(kind ErrorKind) []string {
	switch kind {
	case KindInvalidArg:
		return []string{"An unknown key was requested; run 'interlock-cfg keys' to list recognized keys"}
	case KindMissingConfigFile:
		return []string{
			"Flash a config.txt to the root of the filesystem image",
			"Check the file name is lower case",
		}
	case KindFileSystem:
		return []string{
			"Check that the filesystem image was flashed",
			"Another task may be holding the filesystem lock",
		}
	case KindMissingKey:
		return []string{
			"Every key is required; add the missing KEY=VALUE line",
			"Run 'interlock-cfg keys' to list recognized keys",
		}
	case KindMissingValue:
		return []string{"A key is present with nothing after '='"}
	case KindBadConfigFile:
		return []string{
			"Every non-comment line needs a '=' delimiter",
			"Comment lines start with '#' or ';'",
		}
	case KindTruncated:
		return []string{
			fmt.Sprintf("Keys are limited to %d bytes and values to %d bytes", MaxKeyLength, MaxValueLength),
		}
	case KindInvalidValue:
		return []string{"Run 'interlock-cfg keys' to see accepted values"}
	default:
		return nil
	}
}
