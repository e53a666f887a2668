// Package fleet holds the operational registries: taxis, the drivers behind
// the wheel, and the routes they service.
package fleet

import (
	"time"

	"taxiassoc/internal/audit"
)

// Taxi is one vehicle in the fleet. DriverID and RouteID are zero until
// assigned.
type Taxi struct {
	ID          int64     `json:"taxi_id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model"`
	DriverID    int64     `json:"driver_id,omitempty"`
	RouteID     int64     `json:"route_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Taxi) AuditTable() string   { return "taxi" }
func (t *Taxi) AuditRecordID() int64 { return t.ID }

func (t *Taxi) AuditSnapshot() map[string]any {
	return map[string]any{
		"taxi_id":      t.ID,
		"plate_number": t.PlateNumber,
		"model":        t.Model,
		"driver_id":    t.DriverID,
		"route_id":     t.RouteID,
		"created_at":   audit.Time(t.CreatedAt),
		"updated_at":   audit.Time(t.UpdatedAt),
	}
}

// Driver is one registered driver. License numbers are unique.
type Driver struct {
	ID            int64     `json:"driver_id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Route is one serviced route.
type Route struct {
	ID         int64     `json:"route_id"`
	Name       string    `json:"name"`
	StartPoint string    `json:"start_point"`
	EndPoint   string    `json:"end_point"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateTaxiRequest is the payload for registering a taxi.
type CreateTaxiRequest struct {
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model"`
}

// CreateDriverRequest is the payload for registering a driver.
type CreateDriverRequest struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	ContactNumber string `json:"contact_number"`
}

// CreateRouteRequest is the payload for registering a route.
type CreateRouteRequest struct {
	Name       string `json:"name"`
	StartPoint string `json:"start_point"`
	EndPoint   string `json:"end_point"`
}
