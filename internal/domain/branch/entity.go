package branch

import "time"

type Branch struct {
	ID        string
	Name      string
	Code      string
	Address   *string
	Latitude  *float64
	Longitude *float64
	GeoRadius *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
