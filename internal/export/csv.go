package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/namaztracker/namaz/internal/model"
)

var Header = []string{
	"Date", "Fajr", "Dhuhr/Jumma", "Asr", "Maghrib", "Isha",
	"Total Offered", "On Time", "Qaza", "Home", "Masjid", "Jumma", "Total Missed", "Completion %",
}

var ErrBadCSV = errors.New("malformed report csv")

// CSVRow is one parsed day of an exported report.
type CSVRow struct {
	Date                 string
	Statuses             map[string]model.PrayerStatus
	TotalOffered         int
	TotalOnTime          int
	TotalQaza            int
	TotalHome            int
	TotalMasjid          int
	TotalJumma           int
	TotalMissed          int
	CompletionPercentage int
}

// cellStatus is the status label shown for a prayer on a day. No record and a
// logged miss both read as Missed.
func cellStatus(day *model.DailyRecord, prayerID string) string {
	r, ok := day.Record(prayerID)
	if !ok || !r.IsOffered {
		return model.StatusMissed.Label()
	}
	return r.Status.Label()
}

// WriteCSV writes one row per day of the report.
func WriteCSV(w io.Writer, report *model.ReportData) error {
	cw := csv.NewWriter(w)

	err := cw.Write(Header)
	if err != nil {
		return err
	}

	for i := range report.DailyRecords {
		day := &report.DailyRecords[i]
		row := make([]string, 0, len(Header))
		row = append(row, day.Date)
		for _, p := range model.Prayers {
			row = append(row, cellStatus(day, p.ID))
		}
		row = append(row,
			strconv.Itoa(day.TotalOffered),
			strconv.Itoa(day.TotalOnTime),
			strconv.Itoa(day.TotalQaza),
			strconv.Itoa(day.TotalHome),
			strconv.Itoa(day.TotalMasjid),
			strconv.Itoa(day.TotalJumma),
			strconv.Itoa(day.TotalMissed),
			strconv.Itoa(day.CompletionPercentage),
		)

		err = cw.Write(row)
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func parseStatus(label string) (model.PrayerStatus, error) {
	switch label {
	case "On Time":
		return model.StatusOnTime, nil
	case "Qaza":
		return model.StatusQaza, nil
	case "Missed":
		return model.StatusMissed, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrBadCSV, label)
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]CSVRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCSV, err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadCSV, i, header[i], h)
		}
	}

	rows := []CSVRow{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadCSV, err)
		}

		row := CSVRow{
			Date:     rec[0],
			Statuses: make(map[string]model.PrayerStatus, len(model.Prayers)),
		}
		for i, p := range model.Prayers {
			status, err := parseStatus(rec[1+i])
			if err != nil {
				return nil, err
			}
			row.Statuses[p.ID] = status
		}

		counts := []*int{
			&row.TotalOffered, &row.TotalOnTime, &row.TotalQaza, &row.TotalHome,
			&row.TotalMasjid, &row.TotalJumma, &row.TotalMissed, &row.CompletionPercentage,
		}
		offset := 1 + len(model.Prayers)
		for i, dst := range counts {
			n, err := strconv.Atoi(rec[offset+i])
			if err != nil {
				return nil, fmt.Errorf("%w: %s column %q: %v", ErrBadCSV, row.Date, Header[offset+i], err)
			}
			*dst = n
		}

		rows = append(rows, row)
	}

	return rows, nil
}
