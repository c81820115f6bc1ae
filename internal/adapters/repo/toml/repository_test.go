package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAccountsFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "accounts.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newRepositoryAt(t *testing.T, path string) *Repository {
	t.Helper()

	cfg := viper.New()
	cfg.Set(accountsPathKey, path)

	repo, err := NewRepository(cfg)
	require.NoError(t, err)
	return repo
}

func TestListReturnsAccountsInFileOrder(t *testing.T) {
	path := writeAccountsFile(t, t.TempDir(), `
version = 1

[[accounts]]
name = "main"
uid = "1234567890"
[accounts.cookies]
SUB = "sub-value"
SUBP = "subp-value"

[[accounts]]
name = "alt"
uid = "9876543210"
[accounts.cookies]
SUB = "other"
`)

	accounts, err := newRepositoryAt(t, path).List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "main", accounts[0].Name)
	assert.Equal(t, "1234567890", accounts[0].UID)
	assert.Equal(t, map[string]string{"SUB": "sub-value", "SUBP": "subp-value"}, accounts[0].Cookies)
	assert.Equal(t, "alt", accounts[1].Name)
}

func TestListNamesUnnamedAccountsByPosition(t *testing.T) {
	path := writeAccountsFile(t, t.TempDir(), `
[[accounts]]
uid = "111"
[accounts.cookies]
SUB = "v"
`)

	accounts, err := newRepositoryAt(t, path).List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "account1", accounts[0].Name)
}

func TestListMissingFileYieldsNoAccounts(t *testing.T) {
	repo := newRepositoryAt(t, filepath.Join(t.TempDir(), "accounts.toml"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestListRejectsNewerSchemaVersion(t *testing.T) {
	path := writeAccountsFile(t, t.TempDir(), "version = 2\n")

	_, err := newRepositoryAt(t, path).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported accounts schema version")
}

func TestListRejectsMalformedFile(t *testing.T) {
	path := writeAccountsFile(t, t.TempDir(), "not = [valid")

	_, err := newRepositoryAt(t, path).List(context.Background())
	require.Error(t, err)
}
