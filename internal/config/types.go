package config

import (
	"fmt"
	"math"
)

// DeviceType is what the controller drives.
type DeviceType int

const (
	DeviceDoor DeviceType = iota
	DeviceInterlock
)

func (d DeviceType) String() string {
	switch d {
	case DeviceDoor:
		return "DOOR"
	case DeviceInterlock:
		return "INTERLOCK"
	default:
		return fmt.Sprintf("DeviceType(%d)", int(d))
	}
}

// LEDType is the colour order of the status LED strip.
type LEDType int

const (
	LEDRGBW LEDType = iota
	LEDBGRW
)

func (l LEDType) String() string {
	switch l {
	case LEDRGBW:
		return "RGBW"
	case LEDBGRW:
		return "BGRW"
	default:
		return fmt.Sprintf("LEDType(%d)", int(l))
	}
}

// ReaderType identifies the attached RFID reader.
type ReaderType int

const (
	ReaderRF125PS ReaderType = iota
	ReaderLegacy
)

func (r ReaderType) String() string {
	switch r {
	case ReaderRF125PS:
		return "RF125PS"
	case ReaderLegacy:
		return "LEGACY"
	default:
		return fmt.Sprintf("ReaderType(%d)", int(r))
	}
}

// CardNumber is an RFID card number.
type CardNumber uint64

// SkeletonCardDisabled is stored when RFID_SKELETON_CARD is NONE. Valid card
// numbers are limited to MaxCardNumber, so the two never collide.
const SkeletonCardDisabled CardNumber = math.MaxUint64

// MaxCardNumber is the largest accepted skeleton card number.
const MaxCardNumber CardNumber = math.MaxInt64
