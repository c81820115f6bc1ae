// Package toml reads the accounts file. The file is the operator-maintained
// source of truth for names, uids and cookie bundles; this repository never
// writes it back.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
	"github.com/bnema/weibo-supertopic-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	accountsPathKey  = "accounts.path"
	configDirName    = ".wst"
	accountsFileName = "accounts.toml"
)

type Repository struct {
	accountsPath string
}

var _ ports.AccountSource = (*Repository)(nil)

// NewRepository resolves the accounts file location through viper: the
// optional config file under ~/.wst may override accounts.path.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, accountsFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(accountsPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	accountsPath := cfg.GetString(accountsPathKey)
	if accountsPath == "" {
		return nil, errors.New("accounts path is empty")
	}
	accountsPath, err = filepath.Abs(accountsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve accounts path: %w", err)
	}

	return &Repository{accountsPath: filepath.Clean(accountsPath)}, nil
}

// List returns the configured accounts in file order. A missing file yields
// an empty list, not an error.
func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for i, entry := range file.Accounts {
		account := fromSchema(entry)
		if account.Name == "" {
			account.Name = fmt.Sprintf("account%d", i+1)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func fromSchema(entry accountSchema) domain.Account {
	cookies := make(map[string]string, len(entry.Cookies))
	for name, value := range entry.Cookies {
		cookies[name] = value
	}

	return domain.Account{
		Name:    entry.Name,
		UID:     entry.UID,
		Cookies: cookies,
	}
}
