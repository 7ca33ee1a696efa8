package config

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadValid(t *testing.T, content string) *Snapshot {
	t.Helper()
	snap, err := NewLoader(newTestStore(t, content), nil).Load(context.Background())
	require.NoError(t, err)
	return snap
}

func TestSnapshot_ViewRedacts(t *testing.T) {
	snap := loadValid(t, validConfig)

	v := snap.View(false)
	assert.Equal(t, redacted, v.PortalAPIKey)
	assert.Equal(t, redacted, v.WiFiPSK)
	assert.Equal(t, "DOOR", v.DeviceType)
	assert.Equal(t, "BGRW", v.LEDType)
	assert.Equal(t, "NONE", v.SkeletonCard)

	v = snap.View(true)
	assert.Equal(t, "s3cret=key", v.PortalAPIKey)
	assert.Equal(t, "hunter22", v.WiFiPSK)
}

func TestSnapshot_EncodeYAML(t *testing.T) {
	snap := loadValid(t, replaceLine(validConfig, "RFID_SKELETON_CARD", "RFID_SKELETON_CARD=42"))

	out, err := snap.Encode("yaml", false)
	require.NoError(t, err)

	var v View
	require.NoError(t, yaml.Unmarshal(out, &v))
	assert.Equal(t, snap.View(false), v)
	assert.Equal(t, "42", v.SkeletonCard)
	assert.NotContains(t, string(out), "hunter22")
}

func TestSnapshot_EncodeJSON(t *testing.T) {
	snap := loadValid(t, validConfig)

	out, err := snap.Encode("json", true)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"wifi_psk": "hunter22"`)

	redactedJSON, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(redactedJSON), `"wifi_psk":"********"`)

	_, err = snap.Encode("toml", false)
	assert.Error(t, err)
}

func TestSnapshot_Text(t *testing.T) {
	snap := loadValid(t, validConfig)

	assert.Equal(t, `DOOR "Front Door" -> portal.example.org:8443 (config v1)`, snap.Summary())
	assert.Contains(t, snap.FormatCompact(), "LEDs:    12 x BGRW\n")
	assert.Contains(t, snap.FormatDetailed(false), "PSK:  ********\n")
	assert.Contains(t, snap.FormatDetailed(true), "PSK:  hunter22\n")
}
