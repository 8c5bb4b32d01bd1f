// Package csvexport writes activity history as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"docket/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Recorded At",
	"Activity",
	"User",
	"User ID",
	"Record Kind",
	"Subject ID",
	"Document ID",
	"Record ID",
}

// Writer wraps csv.Writer for exporting activity records.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of history entries to CSV rows and writes them.
func (w *Writer) WriteRecords(views []domain.ActivityRecordView) error {
	for i := range views {
		if err := w.csv.Write(recordToRow(&views[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(v *domain.ActivityRecordView) []string {
	row := make([]string, len(columns))
	row[0] = v.CreatedAt.UTC().Format(time.RFC3339)
	row[1] = string(v.ActivityName)
	row[2] = v.UserName
	row[3] = v.UserID.String()
	row[4] = string(v.Kind)
	row[5] = v.SubjectID.String()
	// only the To half of a transfer carries a document id
	if v.DocumentID != nil {
		row[6] = v.DocumentID.String()
	}
	row[7] = v.ID.String()
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_history_{YYYY-MM-DD}.csv
func BuildFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s_history_%s.csv", SanitizeFilename(name), now.Format("2006-01-02"))
}
