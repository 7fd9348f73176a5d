package bootstrap

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	commonconfig "github.com/park285/action-reaction-hints/internal/common/config"
)

func TestConfigureLogger_FileOutputAndLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	cfg := commonconfig.LogConfig{
		Level:      slog.LevelWarn,
		Dir:        dir,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}

	logger, closer, err := ConfigureLogger(cfg, "hints.log", false)
	if err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	logger.Info("hint_info_dropped")
	logger.Warn("hint_warn_kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "hints.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "hint_warn_kept") {
		t.Errorf("warn line missing: %s", out)
	}
	if strings.Contains(out, "hint_info_dropped") {
		t.Errorf("info line must be filtered: %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("file output must not contain color codes: %q", out)
	}
}

func TestConfigureLogger_StdoutOnly(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closer, err := ConfigureLogger(commonconfig.LogConfig{}, "hints.log", true)
	if err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	if _, ok := logger.Handler().(*OTelHandler); !ok {
		t.Errorf("expected otel handler, got %T", logger.Handler())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("stdout closer must be a no-op: %v", err)
	}
}

func TestConfigureLogger_InvalidRotation(t *testing.T) {
	if _, _, err := ConfigureLogger(commonconfig.LogConfig{Dir: t.TempDir()}, "hints.log", false); err == nil {
		t.Fatal("expected error for zero rotation limits")
	}
}
