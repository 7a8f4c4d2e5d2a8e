// Package store implements the namespaced key-value persistence layer that
// owns the durable copies of the vehicle, lead, and settings collections.
package store

// Storage keys. Each collection lives under its own key so the store never
// collides with unrelated data sharing the same file.
const (
	KeyVehicles = "autovitrine_cars"
	KeyLeads    = "autovitrine_leads"
	KeySettings = "autovitrine_settings"
)

// KV is the raw key-value backend. Values are plain JSON documents; the
// backend never interprets them. Get returns apperr.ErrNotFound when the
// key has never been written.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}
