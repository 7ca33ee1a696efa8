package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const redacted = "********"

// View is a serializable copy of a Snapshot. Secrets are redacted unless the
// view was built with reveal set.
type View struct {
	DeviceType     string `json:"device_type" yaml:"device_type"`
	DeviceName     string `json:"device_name" yaml:"device_name"`
	PortalAddress  string `json:"portal_address" yaml:"portal_address"`
	PortalAPIKey   string `json:"portal_api_key" yaml:"portal_api_key"`
	PortalPort     uint16 `json:"portal_port" yaml:"portal_port"`
	WiFiSSID       string `json:"wifi_ssid" yaml:"wifi_ssid"`
	WiFiPSK        string `json:"wifi_psk" yaml:"wifi_psk"`
	LEDCount       uint16 `json:"led_count" yaml:"led_count"`
	LEDType        string `json:"led_type" yaml:"led_type"`
	RFIDReaderType string `json:"rfid_reader_type" yaml:"rfid_reader_type"`
	SkeletonCard   string `json:"rfid_skeleton_card" yaml:"rfid_skeleton_card"`
	ConfigVersion  uint16 `json:"config_version" yaml:"config_version"`
}

// View returns a serializable copy of s.
func (s *Snapshot) View(reveal bool) View {
	secret := func(v string) string {
		if reveal || v == "" {
			return v
		}
		return redacted
	}
	return View{
		DeviceType:     s.DeviceType().String(),
		DeviceName:     s.DeviceName(),
		PortalAddress:  s.PortalAddress(),
		PortalAPIKey:   secret(s.PortalAPIKey()),
		PortalPort:     s.PortalPort(),
		WiFiSSID:       s.WiFiSSID(),
		WiFiPSK:        secret(s.WiFiPSK()),
		LEDCount:       s.LEDCount(),
		LEDType:        s.LEDType().String(),
		RFIDReaderType: s.RFIDReaderType().String(),
		SkeletonCard:   s.skeletonCardToken(),
		ConfigVersion:  s.ConfigVersion(),
	}
}

func (s *Snapshot) skeletonCardToken() string {
	if !s.UseSkeletonCard() {
		return noneToken
	}
	return fmt.Sprintf("%d", s.SkeletonCard())
}

// Summary returns a one-line summary of the configuration
func (s *Snapshot) Summary() string {
	return fmt.Sprintf("%s %q -> %s:%d (config v%d)",
		s.DeviceType(), s.DeviceName(), s.PortalAddress(), s.PortalPort(), s.ConfigVersion())
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (s *Snapshot) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Device:  %s (%s)\n", s.DeviceName(), s.DeviceType()))
	b.WriteString(fmt.Sprintf("Portal:  %s:%d\n", s.PortalAddress(), s.PortalPort()))
	b.WriteString(fmt.Sprintf("WiFi:    %s\n", s.WiFiSSID()))
	b.WriteString(fmt.Sprintf("LEDs:    %d x %s\n", s.LEDCount(), s.LEDType()))
	b.WriteString(fmt.Sprintf("RFID:    %s (skeleton: %s)\n", s.RFIDReaderType(), s.skeletonCardToken()))

	return b.String()
}

// FormatDetailed returns every value, one section per subsystem.
func (s *Snapshot) FormatDetailed(reveal bool) string {
	v := s.View(reveal)
	var b strings.Builder

	b.WriteString("=== Device ===\n")
	b.WriteString(fmt.Sprintf("Type:           %s\n", v.DeviceType))
	b.WriteString(fmt.Sprintf("Name:           %s\n", v.DeviceName))
	b.WriteString(fmt.Sprintf("Config Version: %d\n", v.ConfigVersion))
	b.WriteString("\n")

	b.WriteString("=== Portal ===\n")
	b.WriteString(fmt.Sprintf("Address: %s\n", v.PortalAddress))
	b.WriteString(fmt.Sprintf("Port:    %d\n", v.PortalPort))
	b.WriteString(fmt.Sprintf("API Key: %s\n", v.PortalAPIKey))
	b.WriteString("\n")

	b.WriteString("=== WiFi ===\n")
	b.WriteString(fmt.Sprintf("SSID: %s\n", v.WiFiSSID))
	b.WriteString(fmt.Sprintf("PSK:  %s\n", v.WiFiPSK))
	b.WriteString("\n")

	b.WriteString("=== Peripherals ===\n")
	b.WriteString(fmt.Sprintf("LED Count:     %d\n", v.LEDCount))
	b.WriteString(fmt.Sprintf("LED Type:      %s\n", v.LEDType))
	b.WriteString(fmt.Sprintf("RFID Reader:   %s\n", v.RFIDReaderType))
	b.WriteString(fmt.Sprintf("Skeleton Card: %s\n", v.SkeletonCard))

	return b.String()
}

// MarshalYAML encodes the redacted view.
func (s *Snapshot) MarshalYAML() (interface{}, error) {
	return s.View(false), nil
}

// MarshalJSON encodes the redacted view.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.View(false))
}

// Encode writes the view in the named format: "yaml" or "json".
func (s *Snapshot) Encode(format string, reveal bool) ([]byte, error) {
	v := s.View(reveal)
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "json":
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
