package config

// Snapshot is a validated configuration. It is built once by a Loader and
// never modified afterwards, so it may be shared freely between goroutines.
//
// Methods on a nil Snapshot return zero values.
type Snapshot struct {
	deviceType    DeviceType
	deviceName    string
	portalAddress string
	portalAPIKey  string
	portalPort    uint16
	wifiSSID      string
	wifiPSK       string
	ledCount      uint16
	ledType       LEDType
	readerType    ReaderType
	skeletonCard  CardNumber
	configVersion uint16
}

// DeviceType returns what the controller drives.
func (s *Snapshot) DeviceType() DeviceType {
	if s == nil {
		return 0
	}
	return s.deviceType
}

// DeviceName returns the name reported to the portal.
func (s *Snapshot) DeviceName() string {
	if s == nil {
		return ""
	}
	return s.deviceName
}

// PortalAddress returns the portal hostname or IP address.
func (s *Snapshot) PortalAddress() string {
	if s == nil {
		return ""
	}
	return s.portalAddress
}

// PortalAPIKey returns the portal API key.
func (s *Snapshot) PortalAPIKey() string {
	if s == nil {
		return ""
	}
	return s.portalAPIKey
}

// PortalPort returns the portal TCP port.
func (s *Snapshot) PortalPort() uint16 {
	if s == nil {
		return 0
	}
	return s.portalPort
}

// WiFiSSID returns the WiFi network name.
func (s *Snapshot) WiFiSSID() string {
	if s == nil {
		return ""
	}
	return s.wifiSSID
}

// WiFiPSK returns the WiFi pre-shared key.
func (s *Snapshot) WiFiPSK() string {
	if s == nil {
		return ""
	}
	return s.wifiPSK
}

// LEDCount returns the number of LEDs on the status strip.
func (s *Snapshot) LEDCount() uint16 {
	if s == nil {
		return 0
	}
	return s.ledCount
}

// LEDType returns the LED strip colour order.
func (s *Snapshot) LEDType() LEDType {
	if s == nil {
		return 0
	}
	return s.ledType
}

// RFIDReaderType returns the attached RFID reader.
func (s *Snapshot) RFIDReaderType() ReaderType {
	if s == nil {
		return 0
	}
	return s.readerType
}

// UseSkeletonCard reports whether a skeleton card is configured.
func (s *Snapshot) UseSkeletonCard() bool {
	return s != nil && s.skeletonCard != SkeletonCardDisabled
}

// SkeletonCard returns the configured card, or SkeletonCardDisabled.
func (s *Snapshot) SkeletonCard() CardNumber {
	if s == nil {
		return 0
	}
	return s.skeletonCard
}

// ConfigVersion returns the config file format version.
func (s *Snapshot) ConfigVersion() uint16 {
	if s == nil {
		return 0
	}
	return s.configVersion
}
