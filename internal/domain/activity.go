package domain

import "time"

// ActivityRecord is one endurance activity fetched from the tracking provider.
// Records are immutable once fetched; a refresh replaces the whole list.
type ActivityRecord struct {
	ID                 int64     `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Type               string    `bson:"type" json:"type"` // provider activity tag, e.g. "Run", "Ride"
	StartDate          time.Time `bson:"startDate" json:"start_date"`
	Distance           float64   `bson:"distance" json:"distance"`                        // meters
	MovingTime         int       `bson:"movingTime" json:"moving_time"`                   // seconds
	TotalElevationGain float64   `bson:"totalElevationGain" json:"total_elevation_gain"`  // meters
}
