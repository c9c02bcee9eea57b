package config

import "testing"

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.DSN != "" || cfg.Workers != DefaultWorkers() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"HUFFCODES_ADDR":    "127.0.0.1:9000",
		"HUFFCODES_DSN":     "postgres://localhost/huff",
		"HUFFCODES_WORKERS": "3",
		"PORT":              "1234",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.DSN != "postgres://localhost/huff" || cfg.Workers != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromPort(t *testing.T) {
	cfg, _ := LoadFrom(env(map[string]string{"PORT": "1234"}))
	if cfg.Addr != ":1234" {
		t.Errorf("Addr = %q, want :1234", cfg.Addr)
	}
}

func TestLoadFromBadWorkers(t *testing.T) {
	for _, w := range []string{"zero", "0", "-2"} {
		cfg, err := LoadFrom(env(map[string]string{"HUFFCODES_WORKERS": w}))
		if err == nil {
			t.Errorf("HUFFCODES_WORKERS=%q: expected error", w)
		}
		if cfg.Workers != DefaultWorkers() {
			t.Errorf("HUFFCODES_WORKERS=%q: Workers = %d, want default", w, cfg.Workers)
		}
	}
}
