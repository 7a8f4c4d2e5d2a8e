// Package models defines the domain types for AutoVitrine.
package models

// VehicleStatus is the lifecycle state of an inventory item.
type VehicleStatus string

// Vehicle lifecycle states. The enumeration is closed: no other values
// are ever persisted.
const (
	VehicleAvailable VehicleStatus = "available"
	VehicleReserved  VehicleStatus = "reserved"
	VehicleSold      VehicleStatus = "sold"
)

// Valid reports whether s is one of the closed set of statuses.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleReserved, VehicleSold:
		return true
	}
	return false
}

// Vehicle represents one inventory item in the showroom.
//
// ID and CreatedAt are assigned once at creation and never change;
// everything else may be replaced by an admin update.
type Vehicle struct {
	ID           string        `json:"id"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	Price        int64         `json:"price"`   // whole currency units (BRL)
	Mileage      int           `json:"mileage"` // kilometers
	FuelType     string        `json:"fuelType"`
	Transmission string        `json:"transmission"`
	Color        string        `json:"color"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"imageUrl"`
	Gallery      []string      `json:"gallery"`
	Status       VehicleStatus `json:"status"`
	CreatedAt    int64         `json:"createdAt"` // epoch milliseconds
}
