package cmd

import (
	"errors"
	"fmt"

	accountsrender "github.com/bnema/weibo-supertopic-cli/internal/adapters/render/accounts"
	"github.com/bnema/weibo-supertopic-cli/internal/application"
	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var accountName string
	var listAccounts bool
	var updateTopics bool

	rootCmd := &cobra.Command{
		Use:           "wst",
		Short:         "Daily super-topic check-in for multiple Weibo accounts",
		Long:          "wst runs the daily super-topic check-in for every configured Weibo account: it validates each stored session, resolves the followed-topic catalog (cached per account), checks into every topic with polite pacing, and records per-run results as JSON.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.Flags().StringVarP(&accountName, "account", "a", "", "Process only the account with this name (case-insensitive exact match)")
	rootCmd.Flags().BoolVarP(&listAccounts, "list", "l", false, "List configured account names without running")
	rootCmd.Flags().BoolVarP(&updateTopics, "update-topics", "u", false, "Force a topic catalog refresh for every processed account")

	rootCmd.AddCommand(newVersionCmd())

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if listAccounts {
			accounts, err := app.coordinator.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accountsrender.Render(accounts))
			return nil
		}

		summary, err := app.coordinator.Run(cmd.Context(), application.RunOptions{
			AccountName:  accountName,
			UpdateTopics: updateTopics,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				if accounts, listErr := app.coordinator.ListAccounts(cmd.Context()); listErr == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), accountsrender.Render(accounts))
				}
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(summary))
		fmt.Fprintf(cmd.OutOrStdout(), "accounts succeeded: %d/%d\n", summary.SucceededAccounts, summary.TotalAccounts)
		return nil
	}

	return rootCmd
}
