package main

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/session"
	"github.com/duskport/hazelclient/pkg/wire"
)

// wizardHandler joins a game and, once its own player has spawned, spams
// identity-change RPCs on a short interval: a demonstrator of the
// non-host identity-setting path, not a feature anyone should run against
// a real server (spec.md Non-goals explicitly calls this out as
// ban-provoking behavior).
type wizardHandler struct {
	session.NoopHandler
	log  *logging.Logger
	stop context.CancelFunc
}

func (h *wizardHandler) OnDisconnectReason(reason wire.DisconnectReason) {
	h.log.WithField("reason", reason.String()).Warn("disconnected")
	h.stop()
}

func newWizardCommand() *cobra.Command {
	var (
		region   string
		username string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wizard <game-code>",
		Short: "Join a game and spam non-host identity RPCs (demo, risks a ban)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := wire.FromChars(args[0])
			if err != nil {
				return fmt.Errorf("invalid game code: %w", err)
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
			h := &wizardHandler{log: logging.For("cmd.wizard"), stop: cancel}

			settings := session.DefaultSettings(username)
			settings.Version = cfg.ProtocolVersion
			sess, err := session.New(addr, settings, h)
			if err != nil {
				return fmt.Errorf("dial: %w", err)
			}
			if err := sess.Join(gameID); err != nil {
				return fmt.Errorf("join: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-sigCh:
					cancel()
				case <-ctx.Done():
				}
			}()

			go func() {
				<-ctx.Done()
				sess.Disconnect()
			}()

			go spamIdentity(ctx, sess, h.log, interval)

			return sess.Run()
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region name (default: first configured region)")
	cmd.Flags().StringVar(&username, "username", "wizard", "username presented in the Hello handshake")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "delay between identity-spam bursts")
	return cmd
}

// spamIdentity fires a random color/skin/hat/pet RPC every interval once
// the session reaches InGame, ignoring rejected requests (the host may
// reject a CheckColor/CheckName for being already taken).
func spamIdentity(ctx context.Context, sess *session.Session, log *logging.Logger, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if sess.State() != session.StateInGame {
				continue
			}
			if err := sess.SetColor(uint8(rand.Intn(18))); err != nil {
				log.WithError(err).Debug("set_color failed")
			}
			if err := sess.SetHat(uint32(rand.Intn(50))); err != nil {
				log.WithError(err).Debug("set_hat failed")
			}
			if err := sess.SetSkin(uint32(rand.Intn(20))); err != nil {
				log.WithError(err).Debug("set_skin failed")
			}
			if err := sess.SetPet(uint32(rand.Intn(10))); err != nil {
				log.WithError(err).Debug("set_pet failed")
			}
		}
	}
}
