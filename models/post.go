package models

import (
	"time"

	"github.com/zsefvlol/timezonemapper"
)

type MealType uint8

const (
	MealTypeOther     MealType = 0
	MealTypeBreakfast MealType = 1
	MealTypeLunch     MealType = 2
	MealTypeDinner    MealType = 3
	MealTypeSnack     MealType = 4
)

// Post is one logged cooking/eating session
type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	UserID    uint64 `gorm:"not null;index:user_post_cooked,priority:1"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title     string `gorm:"type:varchar(300)"`
	Notes     string `gorm:"type:text"`
	// Rating of the dish, 1..5; 0 means not rated
	Rating   uint8
	MealType MealType
	// When the session happened (unix seconds, UTC)
	CookedAt int64 `gorm:"index:user_post_cooked,priority:2"`
	// Offset in seconds to the local time at the place it happened
	TimeOffset *int
	GpsLat     *float64 `gorm:"type:double"`
	GpsLong    *float64 `gorm:"type:double"`
	PlaceID    *uint64
	Place      Place `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Deleted    bool  `gorm:"not null;default 0"`
}

// GetCookedTimeInLocation returns the session time in the timezone of the
// place it happened (from GPS coordinates), or server-local time when no
// coordinates are known.
func (p *Post) GetCookedTimeInLocation() time.Time {
	if p.GpsLat != nil && p.GpsLong != nil {
		zone, err := time.LoadLocation(timezonemapper.LatLngToTimezoneString(*p.GpsLat, *p.GpsLong))
		if err == nil && zone != nil {
			return time.Unix(p.CookedAt, 0).In(zone)
		}
	}
	return time.Unix(p.CookedAt, 0)
}

// LocalDate returns the calendar day ("2006-01-02") the session belongs to,
// preferring the persisted TimeOffset over a GPS lookup.
func (p *Post) LocalDate() string {
	if p.TimeOffset != nil {
		return time.Unix(p.CookedAt+int64(*p.TimeOffset), 0).UTC().Format("2006-01-02")
	}
	return p.GetCookedTimeInLocation().Format("2006-01-02")
}

func (p *Post) GetRoughLocation() (location Location) {
	if p.GpsLat != nil && p.GpsLong != nil {
		// Truncate - only use 0.0001 of precision
		location.GpsLat = float64(int(*p.GpsLat*10000)) / 10000
		location.GpsLong = float64(int(*p.GpsLong*10000)) / 10000
	}
	return
}
