package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanpulse/backend/internal/models"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n := New(nil)
	n.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return n
}

func TestNormalizeRenamesSpreadsheetColumns(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{{
		"ID":             "4",
		"First Name":     "Jane",
		"Last Name":      "Doe",
		"Main Category":  "Ticketing",
		"Sub Category":   "Box Office",
		"Feedback":       "Queue was too long.",
		"Contact User":   "No",
		"Status":         "",
		"Date Submitted": "2026-03-01",
	}})
	require.Len(t, out, 1)
	row := out[0]

	assert.Equal(t, "4", row[models.ColID])
	assert.Equal(t, "Jane", row[models.ColFirstName])
	assert.Equal(t, "Doe", row[models.ColLastName])
	assert.Equal(t, "Ticketing", row[models.ColMainCategory])
	assert.Equal(t, "Box Office", row[models.ColSubCategory])
	assert.Equal(t, "Queue was too long.", row[models.ColFeedbackText])
	assert.Equal(t, "2026-03-01", row[models.ColDateSubmitted])

	_, hasOld := row["First Name"]
	assert.False(t, hasOld)
}

func TestNormalizeRenamesWarehouseColumns(t *testing.T) {
	n := testNormalizer(t)
	when := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	out := n.Normalize([]models.Row{{
		"id":            int64(9),
		"customer_name": "Maria Santos",
		"main_category": "Stadium Experience",
		"sub_category":  "Seating",
		"feedback_text": "Seats were sticky.",
		"contact_user":  "Yes",
		"status":        models.StatusCompleted,
		"created_date":  when,
	}})
	row := out[0]

	assert.Equal(t, int64(9), row[models.ColID])
	assert.Equal(t, "Maria", row[models.ColFirstName])
	assert.Equal(t, "Santos", row[models.ColLastName])
	assert.Equal(t, "Stadium Experience", row[models.ColMainCategory])
	assert.Equal(t, when, row[models.ColDateSubmitted])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := testNormalizer(t)

	inputs := []models.Row{
		{
			"Customer Name":  "Jane Doe",
			"Main Category":  "Ticketing",
			"Feedback":       "Transfer failed.",
			"Date Submitted": "2026-03-01",
		},
		{
			"customer_name": "Prince",
			"category":      "Travel",
		},
		{},
	}

	once := n.Normalize(inputs)
	twice := n.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeSynthesizesOrdinalIDs(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{
		{"Feedback": "first"},
		{"ID": 42, "Feedback": "has one already"},
		{"Feedback": "third"},
	})

	assert.Equal(t, 1, out[0][models.ColID])
	assert.Equal(t, 42, out[1][models.ColID])
	assert.Equal(t, 3, out[2][models.ColID])
}

func TestNormalizeDoesNotOverwriteCanonicalKeys(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{{
		models.ColStatus: models.StatusInProgress,
		"Status":         models.StatusCompleted,
	}})
	row := out[0]

	assert.Equal(t, models.StatusInProgress, row[models.ColStatus])
	_, hasOld := row["Status"]
	assert.False(t, hasOld)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantFirst any
		wantLast  any
	}{
		{"two part name", "Jane Doe", "Jane", "Doe"},
		{"single name", "Prince", "Prince", ""},
		{"three part name", "Liam James O'Connor", "Liam", "James O'Connor"},
		{"surrounding whitespace", "  Aisha Khan  ", "Aisha", "Khan"},
		{"non-string value", 12345, "12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := testNormalizer(t)
			out := n.Normalize([]models.Row{{"Customer Name": tt.input}})
			assert.Equal(t, tt.wantFirst, out[0][models.ColFirstName])
			assert.Equal(t, tt.wantLast, out[0][models.ColLastName])
		})
	}
}

func TestSplitNameKeepsDiscreteFields(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{{
		"First Name":    "Jane",
		"Customer Name": "Someone Else",
	}})
	row := out[0]

	assert.Equal(t, "Jane", row[models.ColFirstName])
	_, hasCombined := row[combinedNameKey]
	assert.False(t, hasCombined)
}

func TestNormalizeDefaults(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{{"Feedback": "bare row"}})
	row := out[0]

	for _, key := range []string{
		models.ColMainCategory,
		models.ColSubCategory,
		models.ColContactUser,
		models.ColStatus,
		models.ColFirstName,
		models.ColLastName,
	} {
		v, ok := row[key]
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, "", v)
	}
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), row[models.ColDateSubmitted])
}

func TestNormalizeCategoryAlias(t *testing.T) {
	n := testNormalizer(t)

	out := n.Normalize([]models.Row{{"Category": "Merchandise"}})
	row := out[0]

	assert.Equal(t, "Merchandise", row[models.ColMainCategory])
	_, hasAlias := row["Category"]
	assert.False(t, hasAlias)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	n := testNormalizer(t)

	input := models.Row{"Customer Name": "Jane Doe"}
	n.Normalize([]models.Row{input})

	assert.Equal(t, models.Row{"Customer Name": "Jane Doe"}, input)
}
