package config

import "fmt"

// File format limits.
const (
	MaxKeyLength   = 63
	MaxValueLength = 127

	// MaxLineLength is a key, the '=' delimiter, a value and a CRLF.
	MaxLineLength = MaxKeyLength + 1 + MaxValueLength + 2
)

// DefaultPath is where the config file lives on the flash filesystem.
const DefaultPath = "/config.txt"

// Key identifies one configuration parameter.
type Key int

// Recognized keys. The loader reads them in this order.
const (
	KeyDeviceType Key = iota
	KeyDeviceName
	KeyPortalAddress
	KeyPortalAPIKey
	KeyPortalPort
	KeyWiFiSSID
	KeyWiFiPSK
	KeyLEDCount
	KeyLEDType
	KeyRFIDReaderType
	KeyRFIDSkeletonCard
	KeyConfigVersion

	numKeys
)

var keyTokens = [numKeys]string{
	KeyDeviceType:       "DEVICE_TYPE",
	KeyDeviceName:       "DEVICE_NAME",
	KeyPortalAddress:    "PORTAL_ADDRESS",
	KeyPortalAPIKey:     "PORTAL_API_KEY",
	KeyPortalPort:       "PORTAL_PORT",
	KeyWiFiSSID:         "WIFI_SSID",
	KeyWiFiPSK:          "WIFI_PSK",
	KeyLEDCount:         "LED_COUNT",
	KeyLEDType:          "LED_TYPE",
	KeyRFIDReaderType:   "RFID_READER_TYPE",
	KeyRFIDSkeletonCard: "RFID_SKELETON_CARD",
	KeyConfigVersion:    "CONFIG_VERSION",
}

// Valid reports whether k is one of the recognized keys.
func (k Key) Valid() bool {
	return k >= 0 && k < numKeys
}

// String returns the canonical token used in the config file.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyTokens[k]
}

// Keys returns every recognized key in load order.
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// ParseKey resolves a file token to its Key, ignoring ASCII case.
func ParseKey(token string) (Key, bool) {
	for k, t := range keyTokens {
		if equalFoldASCII(token, t) {
			return Key(k), true
		}
	}
	return 0, false
}

// KeyInfo documents a key for operators.
type KeyInfo struct {
	Key         Key
	Type        string   // "string", "enum", "uint16" or "card"
	Values      []string // accepted tokens for enums
	Description string
}

var keyInfo = [numKeys]KeyInfo{
	KeyDeviceType:       {Type: "enum", Values: []string{"DOOR", "INTERLOCK"}, Description: "What the controller drives"},
	KeyDeviceName:       {Type: "string", Description: "Name reported to the portal"},
	KeyPortalAddress:    {Type: "string", Description: "Portal hostname or IP address"},
	KeyPortalAPIKey:     {Type: "string", Description: "Portal API key"},
	KeyPortalPort:       {Type: "uint16", Description: "Portal TCP port"},
	KeyWiFiSSID:         {Type: "string", Description: "WiFi network name"},
	KeyWiFiPSK:          {Type: "string", Description: "WiFi pre-shared key"},
	KeyLEDCount:         {Type: "uint16", Description: "Number of LEDs on the status strip"},
	KeyLEDType:          {Type: "enum", Values: []string{"RGBW", "BGRW"}, Description: "LED strip colour order"},
	KeyRFIDReaderType:   {Type: "enum", Values: []string{"RF125PS", "LEGACY"}, Description: "Attached RFID reader"},
	KeyRFIDSkeletonCard: {Type: "card", Values: []string{"NONE"}, Description: "Card that always opens, or NONE"},
	KeyConfigVersion:    {Type: "uint16", Description: "Config file format version"},
}

// Describe returns documentation for k. The zero KeyInfo is returned for
// unknown keys.
func Describe(k Key) KeyInfo {
	if !k.Valid() {
		return KeyInfo{}
	}
	info := keyInfo[k]
	info.Key = k
	return info
}

// equalFoldASCII compares a and b ignoring ASCII case only.
func equalFoldASCII[A, B ~string | ~[]byte](a A, b B) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
