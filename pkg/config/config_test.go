package config

import "testing"

func TestDefaultHasThreeRegions(t *testing.T) {
	cfg := Default()
	if len(cfg.Regions) != 3 {
		t.Fatalf("len(Regions) = %d, want 3", len(cfg.Regions))
	}
	want := map[string]string{
		"europe":        "172.105.251.170",
		"north-america": "66.175.220.120",
		"asia":          "139.162.111.196",
	}
	for _, r := range cfg.Regions {
		host, ok := want[r.Name]
		if !ok {
			t.Errorf("unexpected region %q", r.Name)
			continue
		}
		if r.Host != host {
			t.Errorf("region %q host = %q, want %q", r.Name, r.Host, host)
		}
		if r.Port != 22023 {
			t.Errorf("region %q port = %d, want 22023", r.Name, r.Port)
		}
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.ProtocolVersion != 50516550 {
		t.Errorf("ProtocolVersion = %d, want 50516550", cfg.ProtocolVersion)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load("/nonexistent/path/hazelclient.toml")
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}
	if len(cfg.Regions) != 3 {
		t.Errorf("Regions on fallback = %d, want 3", len(cfg.Regions))
	}
}

func TestRegionLookup(t *testing.T) {
	cfg := Default()
	r, ok := cfg.Region("europe")
	if !ok {
		t.Fatal("Region(\"europe\") not found")
	}
	if r.Addr() != "172.105.251.170:22023" {
		t.Errorf("Addr() = %q, want 172.105.251.170:22023", r.Addr())
	}

	if _, ok := cfg.Region("nowhere"); ok {
		t.Error("Region(\"nowhere\") unexpectedly found")
	}
}
