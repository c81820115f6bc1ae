// Package accounts renders the configured account listing for the --list
// surface.
package accounts

import (
	"fmt"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Render returns the styled account listing. It never touches the network;
// names and uids come straight from the accounts file.
func Render(accounts []domain.Account) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Configured accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(accounts))),
	}

	if len(accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for idx, account := range accounts {
		lines = append(lines, renderAccount(idx+1, account, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(position int, account domain.Account, s styles) string {
	name := s.account.Render(fmt.Sprintf("%d. %s", position, account.Name))

	uid := account.UID
	if uid == "" {
		uid = "uid unset"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, name, " ", s.detail.Render(fmt.Sprintf("(%s)", uid)))
}
