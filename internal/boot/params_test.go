package boot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/interlock/internal/config"
	"github.com/muurk/interlock/internal/flashfs"
)

func loadSnapshot(t *testing.T, content string) *config.Snapshot {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, config.DefaultPath, []byte(content), 0644))
	fs := flashfs.NewStore(mem)
	_, err := fs.Mount()
	require.NoError(t, err)

	snap, err := config.NewLoader(config.NewStore(fs, config.WithLockWait(time.Second)), nil).Load(context.Background())
	require.NoError(t, err)
	return snap
}

func TestNewNetworkParams(t *testing.T) {
	p := NewNetworkParams(loadSnapshot(t, deviceConfig))

	assert.Equal(t, "Workshop", p.SSID)
	assert.Equal(t, "password", p.PSK)
	assert.Equal(t, "key", p.APIKey)
	assert.Equal(t, "Lathe", p.DeviceName)
	assert.Equal(t, "10.0.0.5:443", p.PortalEndpoint())
}

func TestNewNetworkParams_Clipping(t *testing.T) {
	longSSID := strings.Repeat("s", 40)
	longPSK := strings.Repeat("p", 100)
	content := strings.Replace(deviceConfig, "WIFI_SSID=Workshop", "WIFI_SSID="+longSSID, 1)
	content = strings.Replace(content, "WIFI_PSK=password", "WIFI_PSK="+longPSK, 1)

	p := NewNetworkParams(loadSnapshot(t, content))

	assert.Equal(t, longSSID[:SSIDBufferSize-1], p.SSID)
	assert.Equal(t, longPSK[:PSKBufferSize-1], p.PSK)
}

func TestPortalEndpoint_IPv6(t *testing.T) {
	p := NetworkParams{PortalHost: "fd00::1", PortalPort: 8443}
	assert.Equal(t, "[fd00::1]:8443", p.PortalEndpoint())
}

func TestNewPeripheralParams(t *testing.T) {
	p := NewPeripheralParams(loadSnapshot(t, deviceConfig))

	assert.Equal(t, config.DeviceInterlock, p.DeviceType)
	assert.Equal(t, uint16(8), p.LEDCount)
	assert.Equal(t, config.LEDRGBW, p.LEDType)
	assert.Equal(t, config.ReaderLegacy, p.Reader)
	require.NotNil(t, p.SkeletonCard)
	assert.Equal(t, config.CardNumber(1234), *p.SkeletonCard)
	assert.True(t, p.Opens(1234))
	assert.False(t, p.Opens(1235))
}

func TestNewPeripheralParams_NoSkeletonCard(t *testing.T) {
	content := strings.Replace(deviceConfig, "RFID_SKELETON_CARD=1234", "RFID_SKELETON_CARD=none", 1)
	p := NewPeripheralParams(loadSnapshot(t, content))

	assert.Nil(t, p.SkeletonCard)
	assert.False(t, p.Opens(config.SkeletonCardDisabled))
}

type recordingStarter struct {
	got NetworkParams
}

func (r *recordingStarter) Start(_ context.Context, p NetworkParams) error {
	r.got = p
	return nil
}

type recordingInit struct {
	got PeripheralParams
}

func (r *recordingInit) Init(_ context.Context, p PeripheralParams) error {
	r.got = p
	return nil
}

func TestStages(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, config.DefaultPath, []byte(deviceConfig), 0644))
	fs := flashfs.NewStore(mem)
	loader := config.NewLoader(config.NewStore(fs), nil)

	net := &recordingStarter{}
	periph := &recordingInit{}
	_, err := NewSequence(fs, loader).
		AddStage("network", NetworkStage(net)).
		AddStage("peripherals", PeripheralStage(periph)).
		Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Workshop", net.got.SSID)
	assert.Equal(t, uint16(8), periph.got.LEDCount)
}
