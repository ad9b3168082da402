package config

import (
	"flag"
	"testing"
	"time"
)

func TestRegisterFlagsOverridesDefaults(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	if err := fs.Parse([]string{"-data", "/tmp/x", "-buffer", "16", "-checkpoint-interval", "1s"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.DataDir != "/tmp/x" {
		t.Fatalf("DataDir = %q, want /tmp/x", cfg.DataDir)
	}
	if cfg.BufferPages != 16 {
		t.Fatalf("BufferPages = %d, want 16", cfg.BufferPages)
	}
	if cfg.CheckpointInterval != time.Second {
		t.Fatalf("CheckpointInterval = %v, want 1s", cfg.CheckpointInterval)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     ManagerConfig
		wantErr bool
	}{
		{"default ok", Default(), false},
		{"empty data dir", ManagerConfig{DataDir: "", BufferPages: 1}, true},
		{"zero buffer", ManagerConfig{DataDir: "x", BufferPages: 0}, true},
		{"checkpoint enabled zero interval", ManagerConfig{DataDir: "x", BufferPages: 1, CheckpointEnabled: true, CheckpointInterval: 0}, true},
		{"checkpoint disabled zero interval ok", ManagerConfig{DataDir: "x", BufferPages: 1, CheckpointEnabled: false, CheckpointInterval: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
