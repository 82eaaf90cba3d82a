package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------- defaults ----------

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Simulation.TimeStepHours != 6 {
		t.Errorf("time step %d h, want 6", cfg.Simulation.TimeStepHours)
	}
	if cfg.TPGShip.StorageMethod != StorageMCH {
		t.Errorf("storage method %d, want MCH", cfg.TPGShip.StorageMethod)
	}
	if cfg.StorageBase.Type != BaseStorage || cfg.SupplyBase.Type != BaseSupply {
		t.Errorf("base types %d/%d, want storage/supply",
			cfg.StorageBase.Type, cfg.SupplyBase.Type)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	d := cfg.Derived
	if d.TimeStepUnix != 6*3600 {
		t.Errorf("time step %d s, want 21600", d.TimeStepUnix)
	}
	// 2023-01-01 through 2023-12-31 on a 6 h grid.
	wantTicks := int((d.EndUnix-d.StartUnix)/d.TimeStepUnix) + 1
	if d.RecordCount != wantTicks {
		t.Errorf("record count %d, want %d", d.RecordCount, wantTicks)
	}
	if d.SimYears < 0.9 || d.SimYears > 1.1 {
		t.Errorf("sim years %g, want about 1", d.SimYears)
	}
}

// ---------- overrides ----------

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	body := "tpg_ship:\n  max_storage_wh: 100.0e9\n  sail_num: 10\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	if cfg.TPGShip.MaxStorageWh != 100e9 {
		t.Errorf("max storage %g, want override 100e9", cfg.TPGShip.MaxStorageWh)
	}
	if cfg.TPGShip.SailNum != 10 {
		t.Errorf("sail num %d, want override 10", cfg.TPGShip.SailNum)
	}
	// Untouched fields keep their defaults.
	if cfg.TPGShip.MaxSpeedKt != 20 {
		t.Errorf("max speed %g, default lost on partial override", cfg.TPGShip.MaxSpeedKt)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"hull count", "tpg_ship:\n  hull_num: 3\n"},
		{"storage method", "tpg_ship:\n  storage_method: 9\n"},
		{"time order", "simulation:\n  start_time: \"2024-01-01 00:00:00\"\n"},
		{"time step", "simulation:\n  time_step_hours: 0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

// ---------- round trip ----------

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.TPGShip.SailNum = 17

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.TPGShip.SailNum != 17 {
		t.Errorf("sail num %d after round trip, want 17", back.TPGShip.SailNum)
	}
}
