// Package secrets resolves the register API credential. The environment wins
// so containers and CI can inject it; interactive installs use the OS keychain.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "greensignal"
	// RegisterAccount is the keychain account holding the register API key.
	RegisterAccount = "register-api-key"

	// EnvRegisterAPIKey overrides the keychain when set.
	EnvRegisterAPIKey = "GREENSIGNAL_REGISTER_API_KEY"
)

var ErrNotFound = errors.New("register API key not found (set env or store it in the keychain)")

func GetRegisterAPIKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvRegisterAPIKey)); v != "" {
		return v, nil
	}

	key, err := keyring.Get(KeyringService, RegisterAccount)
	if err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}
	return "", ErrNotFound
}

func SetRegisterAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("register API key is empty")
	}
	return keyring.Set(KeyringService, RegisterAccount, key)
}

func DeleteRegisterAPIKey() error {
	return keyring.Delete(KeyringService, RegisterAccount)
}
