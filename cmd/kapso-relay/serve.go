package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	kapso "github.com/goliatone/go-whatsapp-kapso"
	"github.com/goliatone/go-whatsapp-kapso/adapters/gocommand"
	"github.com/goliatone/go-whatsapp-kapso/command"
	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/server"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		addr            string
		echo            bool
		shutdownTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inbound webhook and log received messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var rt *app
			handler := core.MessageRouterFunc(func(ctx context.Context, msg core.InboundMessage) error {
				core.Log(ctx, rt.provider.GetLogger("kapso.inbox"), "info", "inbound message", map[string]any{
					"account_id": msg.AccountID,
					"message_id": msg.MessageID,
					"from":       msg.From,
					"reply_to":   msg.ReplyTo,
					"text":       msg.Text,
				})
				if !echo {
					return nil
				}
				return gocommand.Dispatch(ctx, command.SendTextMessage{
					AccountID: msg.AccountID,
					To:        msg.From,
					Text:      msg.Text,
				})
			})

			var err error
			rt, err = root.load(ctx, kapso.WithInboundHandler(handler))
			if err != nil {
				return err
			}

			adapter := gocommand.NewRegistryAdapter(nil)
			subs, err := rt.facade.Subscribe(adapter)
			if err != nil {
				return err
			}
			defer subs.Unsubscribe()
			if err := adapter.Initialize(); err != nil {
				return err
			}

			unregister := rt.facade.RegisterWebhook()
			defer unregister()

			srv := server.New(rt.facade.Registry(),
				server.WithAddr(addr),
				server.WithLogger(rt.provider.GetLogger("kapso.server")),
				server.WithShutdownTimeout(shutdownTimeout),
			)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&echo, "echo", false, "reply to each inbound message with its own text")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", server.DefaultShutdownTimeout, "graceful shutdown timeout")
	return cmd
}
