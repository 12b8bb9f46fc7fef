package court

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Sport represents the sport a court is built for
type Sport string

const (
	SportTennis     Sport = "tennis"
	SportPadel      Sport = "padel"
	SportSquash     Sport = "squash"
	SportBadminton  Sport = "badminton"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
	SportVolleyball Sport = "volleyball"
)

// Court represents a bookable court inside a facility.
// PricePerHour is stored in minor currency units (cents).
type Court struct {
	ID           uuid.UUID      `db:"id"`
	FacilityID   uuid.UUID      `db:"facility_id"`
	Name         string         `db:"name"`
	Sport        Sport          `db:"sport"`
	Surface      sql.NullString `db:"surface"`
	Indoor       bool           `db:"indoor"`
	PricePerHour int64          `db:"price_per_hour"`
	OpenHour     int            `db:"open_hour"`
	CloseHour    int            `db:"close_hour"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// IsOpenDuring reports whether [start, end) falls inside the court's
// daily opening window. Both times must be on the same calendar date;
// an end at exactly the following midnight counts as hour 24.
func (c *Court) IsOpenDuring(start, end time.Time) bool {
	y, m, d := start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	nextMidnight := dayStart.AddDate(0, 0, 1)

	sameDate := end.After(dayStart) && end.Before(nextMidnight)
	endsAtMidnight := end.Equal(nextMidnight)
	if !sameDate && !endsAtMidnight {
		return false
	}
	if start.Hour() < c.OpenHour {
		return false
	}
	endHour := end.Hour()
	if end.Minute() > 0 {
		endHour++
	}
	if endsAtMidnight {
		endHour = 24
	}
	return endHour <= c.CloseHour
}
