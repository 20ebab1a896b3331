// Package timefmt renders stored instants in the civil time zone the
// service exposes to users (America/Guayaquil, UTC-5 year-round).
package timefmt

import "time"

const (
	// LayoutMinute renders dd/MM/yyyy HH:mm, the notification payload format.
	LayoutMinute = "02/01/2006 15:04"
	// LayoutSecond renders dd/MM/yyyy HH:mm:ss, used on read responses.
	LayoutSecond = "02/01/2006 15:04:05"
)

var guayaquil = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation("America/Guayaquil")
	if err != nil {
		// Guayaquil has no DST transitions, so a fixed offset is equivalent.
		return time.FixedZone("America/Guayaquil", -5*60*60)
	}
	return loc
}

// Location returns the civil time zone used for user-facing dates.
func Location() *time.Location {
	return guayaquil
}

// Minute formats t as dd/MM/yyyy HH:mm in America/Guayaquil.
func Minute(t time.Time) string {
	return t.In(guayaquil).Format(LayoutMinute)
}

// Second formats t as dd/MM/yyyy HH:mm:ss in America/Guayaquil.
func Second(t time.Time) string {
	return t.In(guayaquil).Format(LayoutSecond)
}
