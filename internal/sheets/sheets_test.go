package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-intake-go/internal/types"
)

func TestBuildLeadRow(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	lead := types.LeadRecord{
		LeadName:            "Jane Doe",
		LeadEmail:           "jane@example.com",
		LeadPhone:           "555-0199",
		InquiryType:         "Hardware Procurement",
		PainPoints:          []string{"aging switches", "no visibility"},
		QualificationStatus: "Qualified",
		NextSteps:           []string{"send comparison", "schedule call"},
		Summary:             "Campus refresh.",
	}

	row := BuildLeadRow(now, "c1", lead, "https://rec.example.com/c1.mp4")

	require.Len(t, row, 12)
	assert.Equal(t, "03/14/2026", row[0])
	assert.Equal(t, "09:26:53", row[1])
	assert.Equal(t, "c1", row[2])
	assert.Equal(t, "Jane Doe", row[3])
	assert.Equal(t, "jane@example.com", row[4])
	assert.Equal(t, "555-0199", row[5])
	assert.Equal(t, "Hardware Procurement", row[6])
	assert.Equal(t, "Campus refresh.", row[7])
	assert.Equal(t, "Qualified", row[8])
	assert.Equal(t, "aging switches, no visibility", row[9])
	assert.Equal(t, "send comparison; schedule call", row[10])
	assert.Equal(t, "https://rec.example.com/c1.mp4", row[11])
}

func TestBuildLeadRowMissingFields(t *testing.T) {
	row := BuildLeadRow(time.Now(), "", types.LeadRecord{}, "")

	require.Len(t, row, 12)
	assert.Equal(t, "N/A", row[2])  // conversation id
	assert.Equal(t, "N/A", row[3])  // name
	assert.Equal(t, "N/A", row[4])  // email
	assert.Equal(t, "N/A", row[5])  // phone
	assert.Equal(t, "N/A", row[11]) // recording
	assert.Equal(t, "", row[9])     // empty list joins stay empty
}
