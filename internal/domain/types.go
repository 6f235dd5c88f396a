// Package domain holds the plain record types shared by repositories,
// services, and handlers. No behavior lives here.
package domain

import "time"

// Client is an agency customer whose ad accounts feed the platform.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"` // active, paused, archived
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DataSource is one connected advertising/analytics account for a client.
type DataSource struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	PlatformID string    `json:"platform_id"` // meta_ads, google_ads, ...
	Name       string    `json:"name"`
	Status     string    `json:"status"` // connected, error, disconnected
	LastSyncAt time.Time `json:"last_sync_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// WarehouseSource binds one platform's uploaded CSV object into a warehouse.
type WarehouseSource struct {
	PlatformID string `json:"platform_id"`
	ObjectKey  string `json:"object_key"`
}

// Warehouse is a virtual schema over a set of uploaded CSV objects, one
// per platform. Reports blend across a warehouse's sources.
type Warehouse struct {
	ID        string            `json:"id"`
	ClientID  string            `json:"client_id"`
	Name      string            `json:"name"`
	Sources   []WarehouseSource `json:"sources"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Report cadences.
const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)

// Report is a scheduled blend/aggregate over one warehouse.
type Report struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	GroupBy     []string  `json:"group_by"`
	Cadence     string    `json:"cadence"` // daily, weekly, monthly
	Recipients  []string  `json:"recipients"`
	Enabled     bool      `json:"enabled"`
	LastRunAt   time.Time `json:"last_run_at"`
	NextRunAt   time.Time `json:"next_run_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Alert operators compare a summary total against a threshold.
const (
	OpGreaterThan  = "gt"
	OpGreaterEqual = "gte"
	OpLessThan     = "lt"
	OpLessEqual    = "lte"
)

// Alert watches one metric of a warehouse's blended summary.
type Alert struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	Metric      string    `json:"metric"`   // canonical metric name, incl. ctr/cpc/roas
	Operator    string    `json:"operator"` // gt, gte, lt, lte
	Threshold   float64   `json:"threshold"`
	Enabled     bool      `json:"enabled"`
	LastFiredAt time.Time `json:"last_fired_at"`
	CreatedAt   time.Time `json:"created_at"`
}
