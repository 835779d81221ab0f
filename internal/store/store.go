package store

import (
	"errors"
	"time"
)

// ErrNotFound is the error returned when a key is not found in the store.
var ErrNotFound = errors.New("store: key not found")

// Message is the struct for received pub/sub messages.
type Message struct {
	Channel string
	Payload []byte
}

// Subscription represents an active subscription to a pub/sub channel.
type Subscription interface {
	Channel() <-chan *Message
	Close() error
}

// Store is the key-value persistence backing the account settings store.
// Each operation is an independent call with no multi-key transaction
// guarantee; multi-field settings updates are therefore multiple calls.
type Store interface {
	// Set stores a key-value pair with an optional TTL.
	Set(key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by its key.
	Get(key string) ([]byte, error)

	// Delete removes a value by its key.
	Delete(key string) error

	// Del deletes multiple keys.
	Del(keys ...string) error

	// Exists checks if a key exists in the store.
	Exists(key string) (bool, error)

	// SetNX sets a key-value pair if the key does not already exist.
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)

	// HSet sets fields of the hash stored at key. Used for the per-asset
	// denomination map.
	HSet(key string, values map[string]any) error

	// HGet retrieves a single hash field.
	HGet(key, field string) (string, error)

	// HGetAll retrieves all fields of the hash stored at key.
	HGetAll(key string) (map[string]string, error)

	// HDel removes fields from the hash stored at key.
	HDel(key string, fields ...string) error

	// Publish sends a message to a given channel. Settings commit events
	// fan out to the UI layer through here.
	Publish(channel string, message []byte) error

	// Subscribe listens for messages on a given channel.
	Subscribe(channel string) (Subscription, error)

	// Close closes the store and releases any underlying resources.
	Close() error
}
