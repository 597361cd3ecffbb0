package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Location struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Source      string      `json:"source,omitempty"` // e.g., "OpenStreetMap"
}

// LocationInfo is the coordinate pair returned to the front end. Both
// fields are null when the geocoder found nothing.
type LocationInfo struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func NewLocationInfo(loc *Location) LocationInfo {
	if loc == nil {
		return LocationInfo{}
	}
	lat, lon := loc.Coordinates.Lat, loc.Coordinates.Lon
	return LocationInfo{Latitude: &lat, Longitude: &lon}
}
