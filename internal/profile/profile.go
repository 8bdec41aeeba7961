package profile

import (
	"time"

	"github.com/shopspring/decimal"
)

type Venue struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Musician struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	StageName  string           `json:"stageName"`
	Genres     []string         `json:"genres"`
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
