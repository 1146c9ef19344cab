package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/matchmaker"
	"github.com/duskport/hazelclient/pkg/wire"
)

func newScanCommand() *cobra.Command {
	var (
		region      string
		username    string
		maxRequests int
		cacheSize   int
		maxPlayers  uint8
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List public games from a region's matchmaker",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveRegion(region)
			if err != nil {
				return err
			}
			addr, err := net.ResolveUDPAddr("udp", r.Addr())
			if err != nil {
				return fmt.Errorf("resolve %s: %w", r.Addr(), err)
			}

			settings := matchmaker.DefaultSettings(username)
			settings.Version = cfg.ProtocolVersion
			if !cmd.Flags().Changed("max-requests") {
				maxRequests = cfg.Matchmaker.MaxRequests
			}
			if !cmd.Flags().Changed("cache-size") {
				cacheSize = cfg.Matchmaker.TargetCacheSize
			}
			settings.MaxRequests = maxRequests
			settings.TargetCacheSize = cacheSize
			if maxPlayers > 0 {
				settings.Filter.MaxPlayers = maxPlayers
			}

			scan, err := matchmaker.New(addr, settings)
			if err != nil {
				return fmt.Errorf("start scan: %w", err)
			}
			defer scan.Close()

			log := logging.For("cmd.scan").WithField("region", r.Name).WithField("scan_id", scan.ID().String())
			log.Info("scanning for public games, ctrl-c to stop")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			total := 0
			err = scan.Run(ctx, func(listings []wire.GameListing) bool {
				total += len(listings)
				for _, l := range listings {
					fmt.Printf("%-8s  host=%-16s  players=%d/%d  imposters=%d  age=%ds\n",
						l.ID.String(), l.HostUsername, l.PlayerCount, l.MaxPlayers, l.NumImposters, l.AgeSeconds)
				}
				return false
			})
			log.WithField("total_listings", total).Info("scan stopped")
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region name (default: first configured region)")
	cmd.Flags().StringVar(&username, "username", "scanner", "username presented in the Hello handshake")
	cmd.Flags().IntVar(&maxRequests, "max-requests", 5, "lifetime cap on RequestGameList frames issued")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 200, "target number of buffered listings")
	cmd.Flags().Uint8Var(&maxPlayers, "max-players", 0, "filter listings by max player count (0 = no filter)")
	return cmd
}
