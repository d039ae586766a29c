package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "prodowl"

// WalletTokenKey holds the bearer token for the wallet bridge.
const WalletTokenKey = "wallet_rpc_token"

// Ring reads and writes secrets in a keyring.
type Ring struct {
	cfg keyring.Config
}

// New returns a Ring backed by the system keychain, falling back to an
// encrypted file under ~/.config/prodowl/credentials.
func New() *Ring {
	return &Ring{cfg: keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/prodowl/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("prodowl-file-key"),
		KeychainTrustApplication: true,
	}}
}

// NewFile returns a Ring that only uses the encrypted file backend in dir.
func NewFile(dir, password string) *Ring {
	return &Ring{cfg: keyring.Config{
		ServiceName:      serviceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(password),
	}}
}

func (r *Ring) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key.
func (r *Ring) Get(key string) (string, error) {
	ring, err := r.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Lookup is Get with a missing key reported as "" and no error.
func (r *Ring) Lookup(key string) (string, error) {
	v, err := r.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	return v, err
}

// Set stores a credential value by key.
func (r *Ring) Set(key string, value string) error {
	ring, err := r.open()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "Prodowl " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key.
func (r *Ring) Delete(key string) error {
	ring, err := r.open()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
