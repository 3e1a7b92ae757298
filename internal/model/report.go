package model

// DailyRecord is derived per calendar day and never persisted.
type DailyRecord struct {
	Date                 string         `json:"date"`
	Prayers              []PrayerRecord `json:"prayers"`
	TotalOffered         int            `json:"totalOffered"`
	TotalMissed          int            `json:"totalMissed"`
	TotalOnTime          int            `json:"totalOnTime"`
	TotalQaza            int            `json:"totalQaza"`
	TotalHome            int            `json:"totalHome"`
	TotalMasjid          int            `json:"totalMasjid"`
	TotalJumma           int            `json:"totalJumma"`
	CompletionPercentage int            `json:"completionPercentage"`
}

// Record returns the day's record for prayerID, if one was logged.
func (d *DailyRecord) Record(prayerID string) (PrayerRecord, bool) {
	for _, r := range d.Prayers {
		if r.PrayerID == prayerID {
			return r, true
		}
	}
	return PrayerRecord{}, false
}

type PrayerBreakdown struct {
	Name       string `json:"name"`
	Offered    int    `json:"offered"`
	Missed     int    `json:"missed"`
	OnTime     int    `json:"onTime"`
	Qaza       int    `json:"qaza"`
	Home       int    `json:"home"`
	Masjid     int    `json:"masjid"`
	Percentage int    `json:"percentage"`
}

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

type ReportData struct {
	Period               Period                     `json:"period"`
	StartDate            string                     `json:"startDate"`
	EndDate              string                     `json:"endDate"`
	TotalDays            int                        `json:"totalDays"`
	TotalPrayers         int                        `json:"totalPrayers"`
	TotalOffered         int                        `json:"totalOffered"`
	TotalMissed          int                        `json:"totalMissed"`
	TotalOnTime          int                        `json:"totalOnTime"`
	TotalQaza            int                        `json:"totalQaza"`
	TotalHome            int                        `json:"totalHome"`
	TotalMasjid          int                        `json:"totalMasjid"`
	TotalJumma           int                        `json:"totalJumma"`
	CompletionPercentage int                        `json:"completionPercentage"`
	DailyRecords         []DailyRecord              `json:"dailyRecords"`
	PrayerBreakdown      map[string]PrayerBreakdown `json:"prayerBreakdown"`
}

// DaySummary is the single-day tracker/dashboard view. Unlike DailyRecord it
// measures against the full catalog: missed = catalog - offered.
type DaySummary struct {
	Date                 string         `json:"date"`
	Prayers              []PrayerRecord `json:"prayers"`
	TotalOffered         int            `json:"totalOffered"`
	TotalMissed          int            `json:"totalMissed"`
	TotalOnTime          int            `json:"totalOnTime"`
	TotalQaza            int            `json:"totalQaza"`
	TotalHome            int            `json:"totalHome"`
	TotalMasjid          int            `json:"totalMasjid"`
	CompletionPercentage int            `json:"completionPercentage"`
}

type WeeklySummary struct {
	TotalDays            int `json:"totalDays"`
	TotalOffered         int `json:"totalOffered"`
	TotalMissed          int `json:"totalMissed"`
	TotalOnTime          int `json:"totalOnTime"`
	TotalQaza            int `json:"totalQaza"`
	CompletionPercentage int `json:"completionPercentage"`
}

const (
	SortByDate       = "date"
	SortByCompletion = "completion"
	SortByPrayer     = "prayer"

	SortAsc  = "asc"
	SortDesc = "desc"
)

type ReportFilters struct {
	StartDate string
	EndDate   string
	PrayerIDs []string
	SortBy    string
	SortOrder string
}
