package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/namaztracker/namaz/internal/model"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Filename is the download name for a report covering [start, end].
func Filename(start, end, format string) string {
	return fmt.Sprintf("namaz-report-%s-to-%s.%s", start, end, format)
}

func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// WriteJSON dumps the report as indented JSON.
func WriteJSON(w io.Writer, report *model.ReportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Write encodes the report in format.
func Write(w io.Writer, format string, report *model.ReportData) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, report)
	case FormatCSV:
		return WriteCSV(w, report)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
