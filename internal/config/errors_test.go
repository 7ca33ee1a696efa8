package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	cause := errors.New("boom")

	err := newError(KindFileSystem, KeyDeviceName, "failed to open /config.txt", cause)
	assert.Equal(t, "File System Error: DEVICE_NAME: failed to open /config.txt (caused by: boom)", err.Error())
	assert.ErrorIs(t, err, cause)

	err = newError(KindMissingKey, KeyLEDType, "key not found", nil)
	assert.Equal(t, "Missing Key: LED_TYPE: key not found", err.Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("startup: %w", newError(KindTruncated, KeyWiFiPSK, "long", nil))

	assert.Equal(t, KindTruncated, KindOf(wrapped))
	assert.True(t, IsTruncated(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, IsKind(nil, KindUnknown))
}

func TestErrorKind_Names(t *testing.T) {
	kinds := []ErrorKind{
		KindInvalidArg, KindMissingKey, KindBadConfigFile, KindMissingValue,
		KindMissingConfigFile, KindFileSystem, KindTruncated, KindInvalidValue,
	}
	codes := make(map[string]bool)
	for _, k := range kinds {
		assert.NotContains(t, k.String(), "ErrorKind(")
		assert.NotEqual(t, "INVALID", k.Code())
		assert.False(t, codes[k.Code()], "duplicate code %s", k.Code())
		codes[k.Code()] = true
		assert.NotEmpty(t, TroubleshootingHint(k), k.String())
	}
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
	assert.Nil(t, TroubleshootingHint(KindUnknown))
}
