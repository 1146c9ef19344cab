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

var annoyMessages = []string{
	"gg", "wait", "vote me", "i was venting for fun", "ez", "kicked a wall",
}

type annoyHandler struct {
	session.NoopHandler
	log *logging.Logger
}

func (h *annoyHandler) OnChatMessage(playerID int32, message string) {
	h.log.WithField("player_id", playerID).WithField("message", message).Debug("chat received")
}

func (h *annoyHandler) OnDisconnectReason(reason wire.DisconnectReason) {
	h.log.WithField("reason", reason.String()).Warn("disconnected")
}

func newAnnoyCommand() *cobra.Command {
	var (
		region   string
		username string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "annoy <game-code>",
		Short: "Join a game and spam chat/vent RPCs (demo misuse, risks a ban)",
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
			h := &annoyHandler{log: logging.For("cmd.annoy")}

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
				<-sigCh
				cancel()
			}()
			go func() {
				<-ctx.Done()
				sess.Disconnect()
			}()

			go annoyLoop(ctx, sess, h.log, interval)

			return sess.Run()
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region name (default: first configured region)")
	cmd.Flags().StringVar(&username, "username", "annoyer", "username presented in the Hello handshake")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between chat/vent bursts")
	return cmd
}

// annoyLoop alternates between broadcasting a canned chat line and
// entering/exiting a vent, both RPCs this client is allowed to send as a
// non-host participant — the "annoyance" is purely in how often they fire.
func annoyLoop(ctx context.Context, sess *session.Session, log *logging.Logger, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for toggle := false; ; toggle = !toggle {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if sess.State() != session.StateInGame {
				continue
			}
			if toggle {
				msg := annoyMessages[rand.Intn(len(annoyMessages))]
				if err := sess.SendChat(msg); err != nil {
					log.WithError(err).Debug("send_chat failed")
				}
				continue
			}
			ventID := uint32(rand.Intn(20))
			if err := sess.EnterVent(ventID); err != nil {
				log.WithError(err).Debug("enter_vent failed")
				continue
			}
			if err := sess.ExitVent(ventID); err != nil {
				log.WithError(err).Debug("exit_vent failed")
			}
		}
	}
}
