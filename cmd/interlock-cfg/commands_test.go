package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const imageConfig = "DEVICE_TYPE=DOOR\n" +
	"DEVICE_NAME=Workshop Door\n" +
	"PORTAL_ADDRESS=portal.local\n" +
	"PORTAL_API_KEY=abc123\n" +
	"PORTAL_PORT=8443\n" +
	"WIFI_SSID=Shop\n" +
	"WIFI_PSK=secretpsk\n" +
	"LED_COUNT=4\n" +
	"LED_TYPE=RGBW\n" +
	"RFID_READER_TYPE=RF125PS\n" +
	"RFID_SKELETON_CARD=77\n" +
	"CONFIG_VERSION=3\n"

func writeImage(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "config.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestGet(t *testing.T) {
	root := writeImage(t, imageConfig)

	out, err := execute(t, "get", "wifi_ssid", "--root", root)
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if out != "Shop\n" {
		t.Errorf("get output = %q, want %q", out, "Shop\n")
	}
}

func TestGet_UnknownKey(t *testing.T) {
	root := writeImage(t, imageConfig)

	if _, err := execute(t, "get", "NOPE", "--root", root); err == nil {
		t.Error("get NOPE should fail")
	}
}

func TestCheck(t *testing.T) {
	root := writeImage(t, imageConfig)

	out, err := execute(t, "check", "--root", root, "--reveal-secrets=false")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "SUCCESS") {
		t.Errorf("check output missing SUCCESS:\n%s", out)
	}
	if strings.Contains(out, "secretpsk") {
		t.Error("check output leaked the PSK")
	}
}

func TestCheck_Invalid(t *testing.T) {
	root := writeImage(t, strings.Replace(imageConfig, "LED_TYPE=RGBW\n", "", 1))

	out, err := execute(t, "check", "--root", root)
	if !errors.Is(err, errInvalidConfig) {
		t.Fatalf("check error = %v, want errInvalidConfig", err)
	}
	for _, want := range []string{"FAILED", "CONFIG_ERR_MISSING_KEY"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheck_MissingImage(t *testing.T) {
	_, err := execute(t, "check", "--root", filepath.Join(t.TempDir(), "absent"))
	if err == nil || !strings.Contains(err.Error(), "Have you flashed the config?") {
		t.Errorf("check error = %v, want mount failure status", err)
	}
}

func TestShow_Formats(t *testing.T) {
	root := writeImage(t, imageConfig)

	tests := []struct {
		format string
		want   string
	}{
		{"detailed", "Skeleton Card: 77"},
		{"compact", "Portal:  portal.local:8443"},
		{"yaml", "device_name: Workshop Door"},
		{"json", `"led_count": 4`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "show", "--root", root, "--format", tt.format, "--reveal-secrets=false")
			if err != nil {
				t.Fatalf("show error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("show --format %s missing %q:\n%s", tt.format, tt.want, out)
			}
			if strings.Contains(out, "abc123") {
				t.Error("show leaked the API key")
			}
		})
	}

	if _, err := execute(t, "show", "--root", root, "--format", "xml"); err == nil {
		t.Error("show --format xml should fail")
	}
}

func TestDump(t *testing.T) {
	root := writeImage(t, "DEVICE_NAME=solo\nLED_COUNT=\n")

	out, err := execute(t, "dump", "--root", root)
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	for _, want := range []string{"DEVICE_NAME          solo", "LED_COUNT            error: Missing Value", "WIFI_SSID            error: Missing Key"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestKeys(t *testing.T) {
	var buf bytes.Buffer
	writeKeys(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 12 {
		t.Fatalf("keys listed %d lines, want 12", len(lines))
	}
	if !strings.HasPrefix(lines[0], "DEVICE_TYPE") || !strings.Contains(lines[0], "[DOOR|INTERLOCK]") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestBoot(t *testing.T) {
	root := writeImage(t, imageConfig)

	out, err := execute(t, "boot", "--root", root, "--reveal-secrets=false")
	if err != nil {
		t.Fatalf("boot error = %v", err)
	}
	for _, want := range []string{
		"filesystem:  Filesystem OK",
		`ssid="Shop" psk="********" portal=portal.local:8443`,
		"peripherals: DOOR leds=4xRGBW reader=RF125PS skeleton=77",
		"started:     network, peripherals",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("boot output missing %q:\n%s", want, out)
		}
	}
}

func TestBoot_Halts(t *testing.T) {
	root := writeImage(t, strings.Replace(imageConfig, "LED_COUNT=4", "LED_COUNT=70000", 1))

	out, err := execute(t, "boot", "--root", root)
	if err == nil {
		t.Fatal("boot should fail on an invalid configuration")
	}
	if strings.Contains(out, "started:") {
		t.Errorf("no stage should start:\n%s", out)
	}
}
