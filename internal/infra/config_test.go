package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  api_id: 12345
  api_hash: "abc"
  group: "signals"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Parser.SymbolSuffix != "-STD" {
		t.Errorf("expected default suffix -STD, got %q", cfg.Parser.SymbolSuffix)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("expected default output dir out, got %q", cfg.Output.Dir)
	}
}

func TestLoadConfig_MissingCredentialsIsFatal(t *testing.T) {
	path := writeConfig(t, `
telegram:
  group: "signals"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing api credentials")
	}
}

func TestLoadConfig_MissingGroupIsFatal(t *testing.T) {
	path := writeConfig(t, `
telegram:
  api_id: 12345
  api_hash: "abc"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing group")
	}
}

func TestLoadConfig_InvalidWSURL(t *testing.T) {
	path := writeConfig(t, `
telegram:
  api_id: 12345
  api_hash: "abc"
  group: "signals"
  ws_url: "http://localhost/feed"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for non-websocket feed URL")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
telegram:
  api_id: 12345
  api_hash: "abc"
  group: "signals"
parser:
  symbol_suffix: "-STD"
`)

	t.Setenv("SIGNAL_SYMBOL_POSTFIX", "-ECN")
	t.Setenv("SIGNAL_TG_GROUP", "other-signals")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Parser.SymbolSuffix != "-ECN" {
		t.Errorf("expected -ECN from env, got %q", cfg.Parser.SymbolSuffix)
	}
	if cfg.Telegram.Group != "other-signals" {
		t.Errorf("expected group override, got %q", cfg.Telegram.Group)
	}
}

func TestCalculateBackoff(t *testing.T) {
	if CalculateBackoff(0) != backoffBase {
		t.Errorf("retry 0: got %v", CalculateBackoff(0))
	}
	if CalculateBackoff(1) != 2*backoffBase {
		t.Errorf("retry 1: got %v", CalculateBackoff(1))
	}
	if CalculateBackoff(30) != backoffMax {
		t.Errorf("large retry must cap at %v, got %v", backoffMax, CalculateBackoff(30))
	}
}
