package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-whatsapp-kapso/adapters/gocommand"
	"github.com/goliatone/go-whatsapp-kapso/channel"
	"github.com/goliatone/go-whatsapp-kapso/command"
)

func newSendCommand(root *rootOptions) *cobra.Command {
	var to, text string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a text message through the relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.load(cmd.Context())
			if err != nil {
				return err
			}
			result := rt.facade.SendText(cmd.Context(), to, text)
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient phone number or whatsapp: target")
	cmd.Flags().StringVar(&text, "text", "", "message text")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newNormalizeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <target>...",
		Short: "Normalize phone numbers into E.164 and relay identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.load(cmd.Context())
			if err != nil {
				return err
			}
			subs, err := rt.facade.Subscribe(gocommand.NewRegistryAdapter(nil))
			if err != nil {
				return err
			}
			defer subs.Unsubscribe()

			out := make([]command.ResolvedTarget, 0, len(args))
			for _, raw := range args {
				resolved, err := gocommand.Query[command.ResolveTargetMessage, command.ResolvedTarget](
					cmd.Context(), command.ResolveTargetMessage{Raw: raw},
				)
				if err != nil {
					return err
				}
				out = append(out, resolved)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

type statusReport struct {
	Channel      string                     `json:"channel"`
	Meta         channel.Meta               `json:"meta"`
	Capabilities channel.Capabilities       `json:"capabilities"`
	Account      channel.AccountDescription `json:"account"`
	Snapshot     channel.AccountSnapshot    `json:"snapshot"`
	Summary      channel.ChannelSummary     `json:"summary"`
	DMPolicy     channel.DMPolicyInfo       `json:"dmPolicy"`
	AllowFrom    []string                   `json:"allowFrom"`
	Issues       []channel.StatusIssue      `json:"issues"`
	Warnings     []string                   `json:"warnings"`
}

func newStatusCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the resolved account and channel status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.load(cmd.Context())
			if err != nil {
				return err
			}
			plugin := rt.facade.Plugin()
			account := rt.facade.Account()
			runtime := plugin.DefaultRuntime()
			snapshot := plugin.BuildAccountSnapshot(account, &runtime)

			return writeJSON(cmd.OutOrStdout(), statusReport{
				Channel:      plugin.ID(),
				Meta:         plugin.Meta(),
				Capabilities: plugin.Capabilities(),
				Account:      plugin.DescribeAccount(account),
				Snapshot:     snapshot,
				Summary:      plugin.BuildChannelSummary(snapshot),
				DMPolicy:     plugin.ResolveDMPolicy(account),
				AllowFrom:    plugin.FormatAllowFrom(account.AllowFrom),
				Issues:       plugin.CollectStatusIssues([]channel.AccountSnapshot{snapshot}),
				Warnings:     plugin.CollectWarnings(account),
			})
		},
	}
}
