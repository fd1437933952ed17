package locations

import (
	"log"
	"time"

	"cooklog/db"
	"cooklog/models"

	"github.com/zsefvlol/timezonemapper"
)

func getNextForProcessing(lastProcessedID uint64) (result models.Post) {
	db.Instance.Where("deleted=0 AND gps_lat IS NOT NULL AND gps_long IS NOT NULL AND "+
		"(place_id IS NULL OR time_offset IS NULL) AND created_at<? AND id>?",
		time.Now().Unix()-300, lastProcessedID).Limit(1).Find(&result)
	return
}

func StartProcessing() {
	lastProcessedID := uint64(0)
	for {
		post := getNextForProcessing(lastProcessedID)
		if post.ID == 0 {
			// Nothing to process...
			time.Sleep(30 * time.Second)
			lastProcessedID = 0
			continue
		}
		_ = process(&post)
		lastProcessedID = post.ID
	}
}

func process(p *models.Post) bool {
	if p.TimeOffset == nil {
		fillTimeOffset(p)
	}
	if p.PlaceID != nil {
		return db.Instance.Save(p).Error == nil
	}
	// Try first local DB
	location := p.GetRoughLocation()
	db.Instance.Limit(1).Find(&location, location)
	placeID := location.GetPlaceID()
	if placeID > 0 {
		p.PlaceID = &placeID
		return db.Instance.Save(p).Error == nil
	}
	// Try a Nominatim request
	nominatim := getNominatimLocation(location.GpsLat, location.GpsLong)
	if nominatim == nil {
		log.Printf("No location found for post %d: %f, %f", p.ID, location.GpsLat, location.GpsLong)
		return db.Instance.Save(p).Error == nil
	}
	// Create local DB record
	location.Display = nominatim.DisplayName
	location.Area = nominatim.GetArea()
	location.City = nominatim.GetCity()
	location.Country = nominatim.Address.Country
	location.CountryCode = nominatim.Address.CountryCode
	res := db.Instance.Create(&location)
	if res.Error != nil {
		log.Printf("DB error: %+v", res.Error)
		return false
	}
	// Do we have a corresponding place already in our DB?
	placeID = location.GetPlaceID()
	if placeID == 0 {
		return db.Instance.Save(p).Error == nil
	}
	p.PlaceID = &placeID
	return db.Instance.Save(p).Error == nil
}

// fillTimeOffset derives the local time offset of the session from its GPS
// coordinates so the meal calendar can bucket it without another lookup.
func fillTimeOffset(p *models.Post) {
	zone, err := time.LoadLocation(timezonemapper.LatLngToTimezoneString(*p.GpsLat, *p.GpsLong))
	if err != nil || zone == nil {
		return
	}
	_, offset := time.Unix(p.CookedAt, 0).In(zone).Zone()
	p.TimeOffset = &offset
}
