// Package config loads the protocol version, region server addresses,
// default port, and matchmaker tuning knobs from an optional file via
// viper, falling back to the hard-coded defaults in pkg/wire when no file
// is present. This answers spec.md §9's own open design note: "the
// protocol version and server addresses should be configuration, not
// literals, to permit testing against local servers."
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/duskport/hazelclient/pkg/wire"
)

// Region is one named server this client can dial.
type Region struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port uint16 `mapstructure:"port"`
}

// Matchmaker holds the scan-loop tuning knobs.
type Matchmaker struct {
	MaxRequests     int `mapstructure:"max_requests"`
	TargetCacheSize int `mapstructure:"target_cache_size"`
}

// Config is the full set of values an outer application (or the cmd/client
// CLI) can override via file or flag instead of the stock hard-coded
// defaults.
type Config struct {
	ProtocolVersion uint32     `mapstructure:"protocol_version"`
	DefaultPort     uint16     `mapstructure:"default_port"`
	Regions         []Region   `mapstructure:"regions"`
	Matchmaker      Matchmaker `mapstructure:"matchmaker"`
}

// Default returns the stock configuration: the three hard-coded region
// addresses, the packed protocol version, and the original client's scan
// tuning.
func Default() Config {
	regions := make([]Region, 0, len(wire.RegionServers))
	for _, r := range wire.RegionServers {
		regions = append(regions, Region{Name: r.Name, Host: r.Host, Port: wire.DefaultPort})
	}
	return Config{
		ProtocolVersion: wire.ProtocolVersion,
		DefaultPort:     wire.DefaultPort,
		Regions:         regions,
		Matchmaker: Matchmaker{
			MaxRequests:     5,
			TargetCacheSize: 200,
		},
	}
}

// Load reads configuration from path (TOML, YAML, or JSON, detected by
// viper from the file extension) if path is non-empty and exists,
// layering its values over Default(). An empty path, or a path viper
// cannot find, is not an error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// Region looks up a configured region by name (case-sensitive, matching
// the stock names "europe", "north-america", "asia").
func (c Config) Region(name string) (Region, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Addr formats the region's host:port for net.ResolveUDPAddr.
func (r Region) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
