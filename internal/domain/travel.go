// Package domain contains the core data types for the Time Travel API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, cache, service, handler).
package domain

import (
	"encoding/hex"
	"time"
)

// DateLayout is the wire and message format of a travel date.
const DateLayout = "2006-01-02"

// Travel is a persisted visit of a traveler (identified by Code, the pgi)
// to a place on a calendar date.
type Travel struct {
	// ID is the store-generated 24 character hex identifier.
	ID    string
	Code  string
	Place string
	// Date is a calendar date stored as UTC midnight.
	Date time.Time
}

// View projects a Travel onto its read shape, dropping the ID.
func (t Travel) View() TravelView {
	return TravelView{Code: t.Code, Place: t.Place, Date: t.Date}
}

// TravelView is the shape returned by get and list. The ID is never echoed.
type TravelView struct {
	Code  string
	Place string
	Date  time.Time
}

// TravelRequest is the input of a create. Date is nil when the caller omitted it.
type TravelRequest struct {
	Code  string
	Place string
	Date  *time.Time
}

// Travel converts a validated request into a Travel ready to be saved.
// The date is truncated to UTC midnight.
func (r TravelRequest) Travel() Travel {
	t := Travel{Code: r.Code, Place: r.Place}
	if r.Date != nil {
		t.Date = CalendarDate(*r.Date)
	}
	return t
}

// CalendarDate strips the time of day from t and returns it as UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidTravelID reports whether id has the shape of a travel identifier:
// exactly 24 hexadecimal characters.
func ValidTravelID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
