// Command client is the minimal CLI surface this module carries itself
// (spec.md §6): a handful of demonstrator modes over the core session,
// matchmaker, and transport packages. The graphical front end and its
// mode-selection glue are out of scope (spec.md §1) — this is the small
// external-collaborator surface the core needs to be exercised end to end.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/duskport/hazelclient/pkg/config"
	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/metrics"
)

var (
	cfgPath     string
	logLevel    string
	metricsAddr string
	cfg         config.Config
)

func main() {
	root := &cobra.Command{
		Use:   "hazelclient",
		Short: "Non-host client for the reliable-UDP social-deduction protocol",
		Long: "hazelclient drives the reliable-UDP transport, binary codec, and " +
			"session state machine described in this repository's design docs. " +
			"It never acts as host: identity changes and chat are requested via " +
			"RPCs to the host, matching a genuine non-host client.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetLevel(logLevel); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if metricsAddr != "" {
				startMetricsServer(metricsAddr)
			}
			return nil
		},
	}

	// Accept "--log_level" as an alias for "--log-level" (and likewise for
	// every other flag): scripts generated against either convention both
	// work.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "optional config file (TOML/YAML/JSON) overriding region/matchmaker defaults")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(newScanCommand(), newWizardCommand(), newDummyCommand(), newAnnoyCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func startMetricsServer(addr string) {
	log := logging.For("cmd")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
}

// resolveRegion picks a configured region by name, defaulting to the first
// entry (europe, in the stock configuration) when name is empty.
func resolveRegion(name string) (config.Region, error) {
	if name == "" {
		if len(cfg.Regions) == 0 {
			return config.Region{}, fmt.Errorf("no regions configured")
		}
		return cfg.Regions[0], nil
	}
	r, ok := cfg.Region(name)
	if !ok {
		return config.Region{}, fmt.Errorf("unknown region %q", name)
	}
	return r, nil
}
