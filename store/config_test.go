package store

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataSource == "" {
		t.Errorf("expected a non-empty default data source")
	}
	if cfg.MaxRenderDepth <= 0 {
		t.Errorf("expected a positive default max render depth")
	}
	if cfg.MaxSourceBytes <= 0 {
		t.Errorf("expected a positive default max source size")
	}
}
