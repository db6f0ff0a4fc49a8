//go:build !windows

package vault

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/99designs/keyring"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// Keyring binds to the desktop secret store through 99designs/keyring.
// Username and secret are kept together as one JSON item per target.
type Keyring struct {
	ring keyring.Keyring
}

type keyringItem struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

func open(opts Options) (Vault, error) {
	ring, err := keyring.Open(keyringConfig(opts))
	if err != nil {
		return nil, apperr.Vault("open", err)
	}
	return &Keyring{ring: ring}, nil
}

// keyringConfig keeps every backend scoped to the application so listing
// never surfaces items owned by other programs.
func keyringConfig(opts Options) keyring.Config {
	return keyring.Config{
		ServiceName: opts.ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		KeychainTrustApplication: true,
		LibSecretCollectionName:  opts.ServiceName,
		KWalletFolder:            opts.ServiceName,
		PassPrefix:               opts.ServiceName,
		FileDir:                  opts.Dir,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
}

func (k *Keyring) Save(target, username, secret string) error {
	data, err := json.Marshal(keyringItem{Username: username, Secret: secret})
	if err != nil {
		return apperr.Vault("save", err)
	}
	err = k.ring.Set(keyring.Item{
		Key:   target,
		Data:  data,
		Label: target,
	})
	if err != nil {
		return apperr.Vault("save", err)
	}
	return nil
}

func (k *Keyring) Read(target string) (*models.Identity, error) {
	item, err := k.ring.Get(target)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, apperr.Vault("read", err)
	}
	var v keyringItem
	if err := json.Unmarshal(item.Data, &v); err != nil {
		return nil, apperr.Vault("read", err)
	}
	return &models.Identity{Username: v.Username, Secret: v.Secret}, nil
}

func (k *Keyring) Delete(target string) error {
	err := k.ring.Remove(target)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return apperr.Vault("delete", err)
	}
	return nil
}

func (k *Keyring) ListWithPrefix(prefix string) ([]string, error) {
	keys, err := k.ring.Keys()
	if err != nil {
		return nil, apperr.Vault("list", err)
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}
