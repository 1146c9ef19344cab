package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/purchasefile"
	"github.com/duskport/hazelclient/pkg/session"
	"github.com/duskport/hazelclient/pkg/wire"
)

type dummyHandler struct {
	session.NoopHandler
	log *logging.Logger
}

func (h *dummyHandler) OnJoinedGame() { h.log.Info("joined") }
func (h *dummyHandler) OnDisconnectReason(reason wire.DisconnectReason) {
	h.log.WithField("reason", reason.String()).Info("disconnected")
}

func newDummyCommand() *cobra.Command {
	var (
		region         string
		usernamePrefix string
		purchasesPath  string
	)

	cmd := &cobra.Command{
		Use:   "dummy <game-code> [count]",
		Short: "Bulk-join a game with count concurrent sessions (demo, risks a ban)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := wire.FromChars(args[0])
			if err != nil {
				return fmt.Errorf("invalid game code: %w", err)
			}

			count := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return fmt.Errorf("count must be a positive integer, got %q", args[1])
				}
				count = n
			}

			var purchases purchasefile.Purchases
			if purchasesPath != "" {
				f, err := os.Open(purchasesPath)
				if err != nil {
					return fmt.Errorf("open --purchases file: %w", err)
				}
				purchases, err = purchasefile.Decode(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("decode --purchases file: %w", err)
				}
			}

			r, err := resolveRegion(region)
			if err != nil {
				return err
			}
			addr, err := net.ResolveUDPAddr("udp", r.Addr())
			if err != nil {
				return fmt.Errorf("resolve %s: %w", r.Addr(), err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			log := logging.For("cmd.dummy")
			log.WithField("count", count).Info("bulk joining")

			var wg sync.WaitGroup
			for i := 0; i < count; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					runDummySession(ctx, addr, gameID, fmt.Sprintf("%s%d", usernamePrefix, i), purchases, log)
				}(i)
			}
			wg.Wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region name (default: first configured region)")
	cmd.Flags().StringVar(&usernamePrefix, "username-prefix", "dummy", "username prefix, suffixed with the session index")
	cmd.Flags().StringVar(&purchasesPath, "purchases", "", "optional obfuscated purchase-list file to source hat/pet/skin ids from")
	return cmd
}

func runDummySession(ctx context.Context, addr *net.UDPAddr, gameID wire.GameId, username string, purchases purchasefile.Purchases, log *logging.Logger) {
	sessionLog := log.WithField("username", username)
	h := &dummyHandler{log: sessionLog}

	settings := session.DefaultSettings(username)
	settings.Version = cfg.ProtocolVersion
	if len(purchases.Hats) > 0 {
		settings.HatIndex = purchases.Hats[0]
	}
	if len(purchases.Skins) > 0 {
		settings.SkinIndex = purchases.Skins[0]
	}
	if len(purchases.Pets) > 0 {
		settings.PetIndex = purchases.Pets[0]
	}

	sess, err := session.New(addr, settings, h)
	if err != nil {
		sessionLog.WithError(err).Warn("dial failed")
		return
	}
	if err := sess.Join(gameID); err != nil {
		sessionLog.WithError(err).Warn("join failed")
		return
	}

	go func() {
		<-ctx.Done()
		sess.Disconnect()
	}()

	if err := sess.Run(); err != nil {
		sessionLog.WithError(err).Debug("session ended")
	}
}
