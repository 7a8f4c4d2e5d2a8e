package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rlimports/autovitrine/internal/apperr"
	"github.com/rlimports/autovitrine/internal/models"
)

// Store is the typed persistence layer over a raw KV backend. It is the
// single source of truth for vehicles, leads, and settings; callers must
// re-derive in-memory state from it rather than cache across mutations.
//
// Every mutation is a read-modify-write of the full collection. A mutex
// serializes mutations so concurrent HTTP handlers cannot interleave two
// read-modify-write cycles and lose an update.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *slog.Logger
}

// New creates a typed store over the given backend.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Open opens the configured backend ("bolt" or "sqlite") at path and wraps
// it in a typed store.
func Open(backend, path string, logger *slog.Logger) (*Store, error) {
	var (
		kv  KV
		err error
	)
	switch backend {
	case "sqlite":
		kv, err = OpenSQLite(path)
	default:
		kv, err = OpenBolt(path)
	}
	if err != nil {
		return nil, err
	}
	return New(kv, logger), nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// load decodes the value under key into target. It returns apperr.ErrNotFound
// for both an absent key and an unparsable value: corrupt data is logged and
// treated as "not yet initialized" so the caller's seeding/default path runs.
func (s *Store) load(key string, target any) error {
	data, err := s.kv.Get(key)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("store: discarding unparsable record",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.kv.Put(key, data)
}

// Vehicles returns the current inventory. On first access the sample
// inventory is written and returned, so the collection is never absent
// after a successful call.
func (s *Store) Vehicles() ([]models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vehiclesLocked()
}

func (s *Store) vehiclesLocked() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := s.load(KeyVehicles, &vehicles)
	if errors.Is(err, apperr.ErrNotFound) {
		seed := models.SeedVehicles()
		if putErr := s.save(KeyVehicles, seed); putErr != nil {
			return nil, putErr
		}
		s.logger.Info("store: seeded sample inventory", slog.Int("count", len(seed)))
		return seed, nil
	}
	if err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

// PutVehicles overwrites the inventory wholesale.
func (s *Store) PutVehicles(vehicles []models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeyVehicles, vehicles)
}

// MutateVehicles runs fn against the current inventory and writes back the
// returned collection, all under the store's write lock. fn returning an
// error aborts without writing.
func (s *Store) MutateVehicles(fn func([]models.Vehicle) ([]models.Vehicle, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicles, err := s.vehiclesLocked()
	if err != nil {
		return err
	}
	next, err := fn(vehicles)
	if err != nil {
		return err
	}
	return s.save(KeyVehicles, next)
}

// Leads returns the current leads, newest first. Leads start empty; there
// is no seeding.
func (s *Store) Leads() ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leadsLocked()
}

func (s *Store) leadsLocked() ([]models.Lead, error) {
	var leads []models.Lead
	err := s.load(KeyLeads, &leads)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

// AppendLead prepends the lead so the collection stays newest-first.
func (s *Store) AppendLead(lead models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	leads, err := s.leadsLocked()
	if err != nil {
		return err
	}
	return s.save(KeyLeads, append([]models.Lead{lead}, leads...))
}

// UpdateLeadStatus replaces the status of the matching lead. An absent id
// is a no-op, not an error.
func (s *Store) UpdateLeadStatus(id string, status models.LeadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	leads, err := s.leadsLocked()
	if err != nil {
		return err
	}
	for i := range leads {
		if leads[i].ID == id {
			leads[i].Status = status
		}
	}
	return s.save(KeyLeads, leads)
}

// Settings returns the persisted settings or the canonical default when
// nothing has been saved yet.
func (s *Store) Settings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsLocked()
}

func (s *Store) settingsLocked() (models.Settings, error) {
	var settings models.Settings
	err := s.load(KeySettings, &settings)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// PutSettings overwrites the settings record wholesale.
func (s *Store) PutSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(KeySettings, settings)
}

// EnsureSettings enforces the single-tenant lock-in at startup: when the
// persisted store name drifts from the canonical constant, the whole record
// is reset to the default. The reset is destructive for any customized
// fields, so it is logged as an explicit event rather than done silently.
func (s *Store) EnsureSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, err := s.settingsLocked()
	if err != nil {
		return models.Settings{}, err
	}
	if settings.StoreName == models.CanonicalStoreName {
		return settings, nil
	}
	s.logger.Warn("store: settings store name drifted, resetting to canonical default",
		slog.String("found", settings.StoreName),
		slog.String("canonical", models.CanonicalStoreName))
	def := models.DefaultSettings()
	if err := s.save(KeySettings, def); err != nil {
		return models.Settings{}, err
	}
	return def, nil
}
