package config

import (
	"errors"
	"fmt"
	"math"
)

// noneToken disables the skeleton card.
const noneToken = "NONE"

// ParseDeviceType converts a DEVICE_TYPE value.
func ParseDeviceType(s string) (DeviceType, error) {
	return parseEnum(KeyDeviceType, s, []DeviceType{DeviceDoor, DeviceInterlock})
}

// ParseLEDType converts a LED_TYPE value.
func ParseLEDType(s string) (LEDType, error) {
	return parseEnum(KeyLEDType, s, []LEDType{LEDRGBW, LEDBGRW})
}

// ParseReaderType converts a RFID_READER_TYPE value.
func ParseReaderType(s string) (ReaderType, error) {
	return parseEnum(KeyRFIDReaderType, s, []ReaderType{ReaderRF125PS, ReaderLegacy})
}

func parseEnum[T fmt.Stringer](key Key, s string, values []T) (T, error) {
	for _, v := range values {
		if equalFoldASCII(s, v.String()) {
			return v, nil
		}
	}
	var zero T
	return zero, newError(KindInvalidValue, key, fmt.Sprintf("unrecognized value %q", s), nil)
}

// ParseUint16 converts a decimal value that must fit in 16 bits. Unsigned
// fields take digits only, so any leading '-' (even "-0") is rejected.
func ParseUint16(key Key, s string) (uint16, error) {
	if len(s) > 0 && s[0] == '-' {
		return 0, newError(KindInvalidValue, key, fmt.Sprintf("%q is negative", s), nil)
	}
	n, err := parseDecimal(s)
	if err != nil {
		return 0, newError(KindInvalidValue, key, fmt.Sprintf("%q is not a decimal integer", s), err)
	}
	if n < 0 || n > math.MaxUint16 {
		return 0, newError(KindInvalidValue, key,
			fmt.Sprintf("%d is outside 0..%d", n, math.MaxUint16), nil)
	}
	return uint16(n), nil
}

// ParseSkeletonCard converts a RFID_SKELETON_CARD value. NONE yields
// SkeletonCardDisabled; anything else must be a positive decimal.
func ParseSkeletonCard(s string) (CardNumber, error) {
	if equalFoldASCII(s, noneToken) {
		return SkeletonCardDisabled, nil
	}
	n, err := parseDecimal(s)
	if err != nil {
		return 0, newError(KindInvalidValue, KeyRFIDSkeletonCard,
			fmt.Sprintf("%q is neither NONE nor a decimal card number", s), err)
	}
	if n <= 0 {
		return 0, newError(KindInvalidValue, KeyRFIDSkeletonCard,
			fmt.Sprintf("card number must be positive, got %d", n), nil)
	}
	return CardNumber(n), nil
}

var (
	errSyntax = errors.New("invalid syntax")
	errRange  = errors.New("value out of range")
)

// parseDecimal accepts an optional leading '-' followed by one or more ASCII
// digits. No sign '+', whitespace, base prefix or digit separators.
func parseDecimal(s string) (int64, error) {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, errSyntax
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errSyntax
		}
		if n > (math.MaxUint64-9)/10 {
			return 0, errRange
		}
		n = n*10 + uint64(c-'0')
	}

	if neg {
		if n > 1<<63 {
			return 0, errRange
		}
		return -int64(n), nil
	}
	if n > math.MaxInt64 {
		return 0, errRange
	}
	return int64(n), nil
}
