// Package dealer coordinates store mutations for the storefront: lead
// intake on the public side, inventory/lead/settings management on the
// admin side.
package dealer

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/rlimports/autovitrine/internal/apperr"
	"github.com/rlimports/autovitrine/internal/catalog"
	"github.com/rlimports/autovitrine/internal/models"
	"github.com/rlimports/autovitrine/internal/store"
)

// EventFunc is called after a successful mutation so the serving layer can
// broadcast the change. kind is e.g. "vehicle.created" or "lead.updated".
type EventFunc func(kind, id string)

// Service owns all storefront operations over the persistent store.
type Service struct {
	store  *store.Store
	logger *slog.Logger
	notify EventFunc
}

// NewService creates a dealer service. notify may be nil.
func NewService(st *store.Store, logger *slog.Logger, notify EventFunc) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger, notify: notify}
}

func (s *Service) publish(kind, id string) {
	if s.notify != nil {
		s.notify(kind, id)
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// ListVehicles returns the inventory filtered by q, preserving stored order.
func (s *Service) ListVehicles(_ context.Context, q catalog.Query) ([]models.Vehicle, error) {
	vehicles, err := s.store.Vehicles()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(vehicles, q), nil
}

// GetVehicle returns a single vehicle by id.
func (s *Service) GetVehicle(_ context.Context, id string) (*models.Vehicle, error) {
	vehicles, err := s.store.Vehicles()
	if err != nil {
		return nil, err
	}
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i], nil
		}
	}
	return nil, apperr.ErrNotFound
}

// VehicleDraft is the caller-supplied vehicle payload for create and
// update. ID and CreatedAt are never part of it: the service assigns them
// on create and carries them over from the stored record on update.
type VehicleDraft struct {
	Make         string               `json:"make"`
	Model        string               `json:"model"`
	Year         int                  `json:"year"`
	Price        int64                `json:"price"`
	Mileage      int                  `json:"mileage"`
	FuelType     string               `json:"fuelType"`
	Transmission string               `json:"transmission"`
	Color        string               `json:"color"`
	Description  string               `json:"description"`
	ImageURL     string               `json:"imageUrl"`
	Gallery      []string             `json:"gallery"`
	Status       models.VehicleStatus `json:"status"`
}

// Validate enforces the required-field contract: make, model, and a real
// (non-placeholder) price must be present.
func (d VehicleDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Make, validation.Required),
		validation.Field(&d.Model, validation.Required),
		validation.Field(&d.Year, validation.Required, validation.Min(1900)),
		validation.Field(&d.Price, validation.Required, validation.Min(1)),
		validation.Field(&d.Mileage, validation.Min(0)),
		validation.Field(&d.Status, validation.Required, validation.In(
			models.VehicleAvailable, models.VehicleReserved, models.VehicleSold)),
	)
}

func (d VehicleDraft) vehicle(id string, createdAt int64) models.Vehicle {
	gallery := d.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return models.Vehicle{
		ID:           id,
		Make:         d.Make,
		Model:        d.Model,
		Year:         d.Year,
		Price:        d.Price,
		Mileage:      d.Mileage,
		FuelType:     d.FuelType,
		Transmission: d.Transmission,
		Color:        d.Color,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		Gallery:      gallery,
		Status:       d.Status,
		CreatedAt:    createdAt,
	}
}

// CreateVehicle assigns a fresh id and creation timestamp and prepends the
// vehicle to the inventory.
func (s *Service) CreateVehicle(_ context.Context, d VehicleDraft) (*models.Vehicle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	v := d.vehicle(uuid.NewString(), nowMillis())
	err := s.store.MutateVehicles(func(vehicles []models.Vehicle) ([]models.Vehicle, error) {
		return append([]models.Vehicle{v}, vehicles...), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("vehicle created",
		slog.String("id", v.ID),
		slog.String("make", v.Make),
		slog.String("model", v.Model))
	s.publish("vehicle.created", v.ID)
	return &v, nil
}

// UpdateVehicle replaces the stored vehicle matching id with the draft.
// ID and CreatedAt always come from the existing record, regardless of any
// caller-supplied override.
func (s *Service) UpdateVehicle(_ context.Context, id string, d VehicleDraft) (*models.Vehicle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var updated models.Vehicle
	err := s.store.MutateVehicles(func(vehicles []models.Vehicle) ([]models.Vehicle, error) {
		for i := range vehicles {
			if vehicles[i].ID == id {
				updated = d.vehicle(vehicles[i].ID, vehicles[i].CreatedAt)
				vehicles[i] = updated
				return vehicles, nil
			}
		}
		return nil, apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	s.publish("vehicle.updated", id)
	return &updated, nil
}

// DeleteVehicle removes the vehicle matching id. Deleting an absent id is
// a no-op, which makes the operation safe to retry.
func (s *Service) DeleteVehicle(_ context.Context, id string) error {
	removed := false
	err := s.store.MutateVehicles(func(vehicles []models.Vehicle) ([]models.Vehicle, error) {
		out := vehicles[:0]
		for _, v := range vehicles {
			if v.ID == id {
				removed = true
				continue
			}
			out = append(out, v)
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	if removed {
		s.logger.Info("vehicle deleted", slog.String("id", id))
		s.publish("vehicle.deleted", id)
	}
	return nil
}

// ListLeads returns all leads, newest first.
func (s *Service) ListLeads(_ context.Context) ([]models.Lead, error) {
	return s.store.Leads()
}

// MarkLeadContacted advances a lead from new to contacted. Already
// contacted (or closed) leads are left untouched: the status only ever
// moves forward. An absent id is a no-op.
func (s *Service) MarkLeadContacted(_ context.Context, id string) error {
	leads, err := s.store.Leads()
	if err != nil {
		return err
	}
	for _, l := range leads {
		if l.ID != id {
			continue
		}
		if l.Status != models.LeadNew {
			return nil
		}
		if err := s.store.UpdateLeadStatus(id, models.LeadContacted); err != nil {
			return err
		}
		s.publish("lead.updated", id)
		return nil
	}
	return nil
}

// Settings returns the current storefront settings.
func (s *Service) Settings(_ context.Context) (models.Settings, error) {
	return s.store.Settings()
}

// SaveSettings overwrites the settings wholesale. The store name is pinned
// to the canonical tenant regardless of input.
func (s *Service) SaveSettings(_ context.Context, settings models.Settings) (models.Settings, error) {
	settings.StoreName = models.CanonicalStoreName
	if err := s.store.PutSettings(settings); err != nil {
		return models.Settings{}, err
	}
	s.publish("settings.updated", "")
	return settings, nil
}

// Stats is the admin dashboard summary.
type Stats struct {
	AvailableVehicles int `json:"available_vehicles"`
	TotalVehicles     int `json:"total_vehicles"`
	FinancingLeads    int `json:"financing_leads"`
	NewFinancingLeads int `json:"new_financing_leads"`
	SellLeads         int `json:"sell_leads"`
	NewSellLeads      int `json:"new_sell_leads"`
}

// Stats computes the dashboard counters from the current collections.
func (s *Service) Stats(_ context.Context) (*Stats, error) {
	vehicles, err := s.store.Vehicles()
	if err != nil {
		return nil, err
	}
	leads, err := s.store.Leads()
	if err != nil {
		return nil, err
	}
	st := &Stats{TotalVehicles: len(vehicles)}
	for _, v := range vehicles {
		if v.Status == models.VehicleAvailable {
			st.AvailableVehicles++
		}
	}
	for _, l := range leads {
		switch l.Type {
		case models.LeadFinancing:
			st.FinancingLeads++
			if l.Status == models.LeadNew {
				st.NewFinancingLeads++
			}
		case models.LeadSell:
			st.SellLeads++
			if l.Status == models.LeadNew {
				st.NewSellLeads++
			}
		}
	}
	return st, nil
}
