package product

import (
	"time"
)

type Product struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Images      []string       `json:"images"`
	Stock       int            `json:"stock"`
	Specs       map[string]any `json:"specs,omitempty"`
	Featured    bool           `json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Specs is an open schema: the import scripts populate it with
// heterogeneous string/number scalars per category (wattage, voltage,
// chemistry, ...), so it is a map rather than a fixed struct.

type Filter struct {
	Category *string
	Search   *string
	Sort     *string
	MinPrice *float64
	MaxPrice *float64
}
