package model

const (
	PrayerFajr    = "fajr"
	PrayerDhuhr   = "dhuhr"
	PrayerAsr     = "asr"
	PrayerMaghrib = "maghrib"
	PrayerIsha    = "isha"
)

type Prayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArabicName string `json:"arabicName"`
	Time       string `json:"time"`
	IsFarz     bool   `json:"isFarz"`
}

// Prayers is the fixed catalog of the five daily farz prayers, in day order.
var Prayers = []Prayer{
	{ID: PrayerFajr, Name: "Fajr", ArabicName: "الفجر", Time: "Dawn", IsFarz: true},
	{ID: PrayerDhuhr, Name: "Dhuhr", ArabicName: "الظهر", Time: "Midday", IsFarz: true},
	{ID: PrayerAsr, Name: "Asr", ArabicName: "العصر", Time: "Afternoon", IsFarz: true},
	{ID: PrayerMaghrib, Name: "Maghrib", ArabicName: "المغرب", Time: "Sunset", IsFarz: true},
	{ID: PrayerIsha, Name: "Isha", ArabicName: "العشاء", Time: "Night", IsFarz: true},
}

func CatalogSize() int {
	return len(Prayers)
}

func PrayerByID(id string) (Prayer, bool) {
	for _, p := range Prayers {
		if p.ID == id {
			return p, true
		}
	}
	return Prayer{}, false
}
