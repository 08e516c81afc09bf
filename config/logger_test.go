package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMinLevel(t *testing.T) {
	tests := []struct {
		name  string
		level zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"normal", zapcore.InfoLevel, true},
		{"none", zapcore.InvalidLevel, false},
		{"", zapcore.InvalidLevel, false},
	}
	for _, tt := range tests {
		level, ok := minLevel(tt.name)
		if level != tt.level || ok != tt.ok {
			t.Errorf("minLevel(%q) = %v, %v; want %v, %v", tt.name, level, ok, tt.level, tt.ok)
		}
	}
}

func TestLoggingConfig_PrepareFile(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "bdr.log"), Mode: "overwrite"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	log.Debug("hidden message")
	log.Info("visible message", zap.String("key", "value"))
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "value") {
		t.Errorf("log file misses info entry:\n%s", out)
	}
	if strings.Contains(out, "hidden message") {
		t.Errorf("log file has debug entry at normal level:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "bdr-panic.log")); err != nil {
		t.Errorf("panic log was not created: %v", err)
	}
}

func TestLoggingConfig_PrepareConsoleOnly(t *testing.T) {
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: "none"},
		ConsoleLogger: LoggerConfig{Level: "none"},
		StdoutTaken:   true,
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger with everything disabled reports error level enabled")
	}
}
