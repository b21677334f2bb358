package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language == "" {
		t.Error("expected a default language")
	}
	if cfg.AutoStopEnabled {
		t.Error("expected auto-stop disabled by default")
	}
	if cfg.AutoStopSeconds <= 0 {
		t.Error("expected a positive default auto-stop duration")
	}
	if cfg.RefinerEnabled {
		t.Error("expected refiner disabled by default")
	}
}

func TestConfigDir_PrefersXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test-home")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error = %v", err)
	}
	want := "/tmp/xdg-test-home/dictation-core"
	if dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}
