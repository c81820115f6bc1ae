package cmd

import (
	"fmt"

	"github.com/bnema/weibo-supertopic-cli/internal/application"
	"github.com/jedib0t/go-pretty/v6/table"
)

func renderSummaryTable(summary application.Summary) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Account", "Topics", "Signed", "Result"})

	for _, result := range summary.Accounts {
		t.AppendRow(table.Row{
			result.Account,
			result.Topics,
			fmt.Sprintf("%d/%d", result.Successes, result.Topics),
			accountResultLabel(result),
		})
	}

	return t.Render()
}

func accountResultLabel(result application.AccountResult) string {
	if result.Processed {
		return "ok"
	}
	return "failed"
}
