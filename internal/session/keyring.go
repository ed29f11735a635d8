package session

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keychain service the session is filed under.
const KeyringService = "stockdesk"

type keyringSlot struct {
	service string
	user    string
}

// NewKeyringStore returns a Store backed by the OS keychain.
func NewKeyringStore(service, name string) Store {
	return newSlotStore(&keyringSlot{service: service, user: name})
}

func (k *keyringSlot) read() ([]byte, error) {
	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, errSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

func (k *keyringSlot) write(data []byte) error {
	return keyring.Set(k.service, k.user, string(data))
}

func (k *keyringSlot) remove() error {
	err := keyring.Delete(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (k *keyringSlot) close() error { return nil }

func (k *keyringSlot) describe() string { return "keyring:" + k.service + "/" + k.user }
