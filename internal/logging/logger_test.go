package logging

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zap.ErrorLevel) {
		t.Error("logger should be silent when no level is configured")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	defer SetLogger(nil)

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}

	core := GetLogger().Core()
	if core.Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zap.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestConfigSink_Report(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ConfigSink().Report("  - Missing Key")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].Message != "  - Missing Key" {
		t.Errorf("message = %q", entries[0].Message)
	}
	if entries[0].LoggerName != "config" {
		t.Errorf("logger name = %q, want config", entries[0].LoggerName)
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("level = %v, want error", entries[0].Level)
	}
}

func TestWriterSink_Report(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.Report("first")
	sink.Report("second")

	if buf.String() != "first\nsecond\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLogRawBytes(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogRawBytes("rejected line", []byte("KEY\x01=v"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["ascii"] != "KEY.=v" {
		t.Errorf("ascii = %v, want %q", fields["ascii"], "KEY.=v")
	}
	if fields["hex"] != "4b4559013d76" {
		t.Errorf("hex = %v", fields["hex"])
	}
}

func TestDumps_Limit(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 300)

	if got := asciiDump(data); len(got) != 256 {
		t.Errorf("asciiDump() length = %d, want 256", len(got))
	}
	if got := hexDump(data); len(got) != 512+3 {
		t.Errorf("hexDump() length = %d, want %d", len(got), 512+3)
	}
	if hexDump(nil) != "" || asciiDump(nil) != "" {
		t.Error("empty input should produce empty dumps")
	}
}
