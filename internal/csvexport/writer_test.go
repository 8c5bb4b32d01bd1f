package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/csvexport"
	"docket/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "Recorded At", row[0])
	assert.Equal(t, "Record ID", row[7])
}

func TestWriteRecords(t *testing.T) {
	docID := uuid.New()
	loc := time.FixedZone("IST", 5*3600+1800)
	views := []domain.ActivityRecordView{
		{
			ActivityRecord: domain.ActivityRecord{
				ID:        uuid.New(),
				Kind:      domain.AuditDocument,
				SubjectID: docID,
				UserID:    uuid.New(),
				CreatedAt: time.Date(2026, 3, 2, 15, 30, 0, 0, loc),
			},
			ActivityName: domain.ActivityCheckedOut,
			UserName:     "Reyes, Dana",
		},
		{
			ActivityRecord: domain.ActivityRecord{
				ID:         uuid.New(),
				Kind:       domain.AuditMatterDocumentTo,
				SubjectID:  uuid.New(),
				DocumentID: &docID,
				UserID:     uuid.New(),
				CreatedAt:  time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
			},
			ActivityName: domain.ActivityMoved,
			UserName:     "Sam Okafor",
		},
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteRecords(views))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-03-02T10:00:00Z", rows[0][0])
	assert.Equal(t, "CHECKED OUT", rows[0][1])
	assert.Equal(t, "Reyes, Dana", rows[0][2])
	assert.Equal(t, "document", rows[0][4])
	assert.Empty(t, rows[0][6])

	assert.Equal(t, "matter_document_to", rows[1][4])
	assert.Equal(t, docID.String(), rows[1][6])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Smith v. Jones", "Smith_v_Jones"},
		{"  brief (final)  ", "brief_final"},
		{"a__b", "a_b"},
		{"plain-name_1", "plain-name_1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, csvexport.SanitizeFilename(tt.in))
	}

	long := csvexport.SanitizeFilename(string(bytes.Repeat([]byte("x"), 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "brief_history_2026-10-16.csv", csvexport.BuildFilename("brief", now))
}
