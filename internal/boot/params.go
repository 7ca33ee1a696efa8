package boot

import (
	"context"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/muurk/interlock/internal/config"
	"github.com/muurk/interlock/internal/logging"
)

// Radio driver buffer sizes, terminator included.
const (
	SSIDBufferSize = 32
	PSKBufferSize  = 64
)

// NetworkParams is what network bring-up needs from the configuration.
type NetworkParams struct {
	SSID       string
	PSK        string
	PortalHost string
	PortalPort uint16
	APIKey     string
	DeviceName string
}

// NewNetworkParams derives network parameters from snap. SSID and PSK are
// clipped to what the radio driver can hold.
func NewNetworkParams(snap *config.Snapshot) NetworkParams {
	return NetworkParams{
		SSID:       clip("wifi_ssid", snap.WiFiSSID(), SSIDBufferSize),
		PSK:        clip("wifi_psk", snap.WiFiPSK(), PSKBufferSize),
		PortalHost: snap.PortalAddress(),
		PortalPort: snap.PortalPort(),
		APIKey:     snap.PortalAPIKey(),
		DeviceName: snap.DeviceName(),
	}
}

// PortalEndpoint returns host:port, bracketing IPv6 literals.
func (p NetworkParams) PortalEndpoint() string {
	return net.JoinHostPort(p.PortalHost, strconv.Itoa(int(p.PortalPort)))
}

// clip keeps at most size-1 bytes of s.
func clip(field, s string, size int) string {
	if len(s) < size {
		return s
	}
	logging.Warn("Value clipped to fit radio driver",
		zap.String("field", field),
		zap.Int("length", len(s)),
		zap.Int("max", size-1),
	)
	return s[:size-1]
}

// PeripheralParams is what LED and RFID initialization needs.
type PeripheralParams struct {
	DeviceType config.DeviceType
	LEDCount   uint16
	LEDType    config.LEDType
	Reader     config.ReaderType

	// SkeletonCard is nil when no skeleton card is configured.
	SkeletonCard *config.CardNumber
}

// NewPeripheralParams derives peripheral parameters from snap.
func NewPeripheralParams(snap *config.Snapshot) PeripheralParams {
	p := PeripheralParams{
		DeviceType: snap.DeviceType(),
		LEDCount:   snap.LEDCount(),
		LEDType:    snap.LEDType(),
		Reader:     snap.RFIDReaderType(),
	}
	if snap.UseSkeletonCard() {
		card := snap.SkeletonCard()
		p.SkeletonCard = &card
	}
	return p
}

// Opens reports whether card is the configured skeleton card.
func (p PeripheralParams) Opens(card config.CardNumber) bool {
	return p.SkeletonCard != nil && *p.SkeletonCard == card
}

// NetworkStarter consumes network parameters, e.g. a WiFi driver.
type NetworkStarter interface {
	Start(ctx context.Context, params NetworkParams) error
}

// PeripheralInitializer consumes peripheral parameters.
type PeripheralInitializer interface {
	Init(ctx context.Context, params PeripheralParams) error
}

// NetworkStage adapts a NetworkStarter to a StageFunc.
func NetworkStage(n NetworkStarter) StageFunc {
	return func(ctx context.Context, snap *config.Snapshot) error {
		return n.Start(ctx, NewNetworkParams(snap))
	}
}

// PeripheralStage adapts a PeripheralInitializer to a StageFunc.
func PeripheralStage(p PeripheralInitializer) StageFunc {
	return func(ctx context.Context, snap *config.Snapshot) error {
		return p.Init(ctx, NewPeripheralParams(snap))
	}
}
