package model

import (
	"encoding/json"
	"time"
)

type PrayerStatus string

const (
	StatusOnTime PrayerStatus = "on-time"
	StatusQaza   PrayerStatus = "qaza"
	StatusMissed PrayerStatus = "missed"
)

func (s PrayerStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusQaza, StatusMissed:
		return true
	}
	return false
}

// Label is the human form used in CSV exports and the UI.
func (s PrayerStatus) Label() string {
	switch s {
	case StatusOnTime:
		return "On Time"
	case StatusQaza:
		return "Qaza"
	default:
		return "Missed"
	}
}

type Location string

const (
	LocationHome   Location = "home"
	LocationMasjid Location = "masjid"
)

func (l Location) Valid() bool {
	return l == LocationHome || l == LocationMasjid
}

// PrayerRecord is one logged decision for a (date, prayer) pair.
// IsOffered == false implies Status == StatusMissed.
type PrayerRecord struct {
	ID        string       `json:"id" db:"id"`
	Date      string       `json:"date" db:"date"`
	PrayerID  string       `json:"prayerId" db:"prayer_id"`
	IsOffered bool         `json:"isOffered" db:"is_offered"`
	Status    PrayerStatus `json:"status" db:"status"`
	OfferedAt *time.Time   `json:"offeredAt,omitempty" db:"offered_at"`
	Location  Location     `json:"location,omitempty" db:"location"`
	Notes     string       `json:"notes,omitempty" db:"notes"`
}

// UnmarshalJSON accepts blobs written before "status" was introduced,
// where the same value lived under "prayerType".
func (r *PrayerRecord) UnmarshalJSON(data []byte) error {
	type plain PrayerRecord
	aux := struct {
		*plain
		PrayerType PrayerStatus `json:"prayerType"`
	}{plain: (*plain)(r)}

	err := json.Unmarshal(data, &aux)
	if err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = aux.PrayerType
	}
	if r.Status == "" && !r.IsOffered {
		r.Status = StatusMissed
	}
	return nil
}

func RecordID(date, prayerID string) string {
	return date + "-" + prayerID
}

// StoredData is the layout of the single persisted blob.
type StoredData struct {
	PrayerRecords []PrayerRecord `json:"prayerRecords"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}
