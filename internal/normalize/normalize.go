// Package normalize rewrites heterogeneous source rows into the canonical
// feedback schema. Normalization is idempotent and never fails a fetch:
// anything it cannot make sense of degrades to a default.
package normalize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/fanpulse/backend/internal/models"
)

// combinedNameKey is the intermediate key combined "customer name" columns
// are folded into before the first/last split.
const combinedNameKey = "customerName"

// synonyms maps recognized source column names to canonical ones. Both the
// warehouse's snake_case dialect and the spreadsheet export's title-case
// headers appear here.
var synonyms = map[string]string{
	"ID": models.ColID,

	"First Name": models.ColFirstName,
	"first_name": models.ColFirstName,
	"Last Name":  models.ColLastName,
	"last_name":  models.ColLastName,

	"Name":          combinedNameKey,
	"Customer Name": combinedNameKey,
	"customer_name": combinedNameKey,

	"Sub Category": models.ColSubCategory,
	"sub_category": models.ColSubCategory,

	"Feedback":      models.ColFeedbackText,
	"Feedback Text": models.ColFeedbackText,
	"feedback":      models.ColFeedbackText,
	"feedback_text": models.ColFeedbackText,

	"Contact User": models.ColContactUser,
	"contact_user": models.ColContactUser,

	"Status": models.ColStatus,
	"status": models.ColStatus,

	"Date Submitted": models.ColDateSubmitted,
	"date_submitted": models.ColDateSubmitted,
	"Created Date":   models.ColDateSubmitted,
	"created_date":   models.ColDateSubmitted,

	"Last Updated By":   models.ColLastUpdatedBy,
	"last_updated_by":   models.ColLastUpdatedBy,
	"Last Updated Time": models.ColLastUpdatedTime,
	"last_updated_time": models.ColLastUpdatedTime,

	"Sentiment": models.ColSentiment,
}

// mainCategoryAliases are tried in order when synthesizing mainCategory.
var mainCategoryAliases = []string{
	models.ColMainCategory,
	"Main Category",
	"main_category",
	"Category",
	"category",
}

// Normalizer canonicalizes source rows.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Normalizer.
func New(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger, now: time.Now}
}

// Normalize canonicalizes a row-set. Running it on already-normalized rows
// yields the same rows.
func (n *Normalizer) Normalize(rows []models.Row) []models.Row {
	out := make([]models.Row, len(rows))
	for i, row := range rows {
		out[i] = n.normalizeRow(row, i)
	}
	return out
}

func (n *Normalizer) normalizeRow(row models.Row, ordinal int) models.Row {
	out := make(models.Row, len(row))
	for k, v := range row {
		out[k] = v
	}

	// Synonym renames. A rename only happens when the canonical key is not
	// already present, so normalized data is never overwritten.
	for src, canonical := range synonyms {
		v, ok := out[src]
		if !ok {
			continue
		}
		if _, exists := out[canonical]; !exists {
			out[canonical] = v
		}
		delete(out, src)
	}

	// 1-based ordinal id over the set's current order when the source has
	// no identifier. Not stable across reloads of fallback data.
	if _, ok := out[models.ColID]; !ok {
		out[models.ColID] = ordinal + 1
	}

	if _, ok := out[models.ColMainCategory]; !ok {
		out[models.ColMainCategory] = ""
		for _, alias := range mainCategoryAliases[1:] {
			if v, found := out[alias]; found {
				out[models.ColMainCategory] = v
				delete(out, alias)
				break
			}
		}
	}

	n.splitName(out)

	for _, key := range []string{
		models.ColContactUser,
		models.ColStatus,
		models.ColSubCategory,
		models.ColFirstName,
		models.ColLastName,
	} {
		if _, ok := out[key]; !ok {
			out[key] = ""
		}
	}

	// A date-like field is always present. When the source has none we can
	// only stamp the load time, which is explicitly not historically
	// accurate.
	if _, ok := out[models.ColDateSubmitted]; !ok {
		out[models.ColDateSubmitted] = n.now()
	}

	return out
}

// splitName derives firstName/lastName from a combined name field when the
// discrete fields are absent. A malformed value degrades to the whole raw
// value in firstName.
func (n *Normalizer) splitName(row models.Row) {
	_, hasFirst := row[models.ColFirstName]
	_, hasLast := row[models.ColLastName]
	combined, hasCombined := row[combinedNameKey]
	if !hasCombined {
		return
	}
	delete(row, combinedNameKey)
	if hasFirst || hasLast {
		return
	}

	name, ok := combined.(string)
	if !ok {
		n.logger.Warn("combined name field is not text, keeping raw value as first name",
			zap.Any("value", combined))
		row[models.ColFirstName] = fmt.Sprint(combined)
		row[models.ColLastName] = ""
		return
	}

	name = strings.TrimSpace(name)
	idx := strings.IndexFunc(name, unicode.IsSpace)
	if idx < 0 {
		row[models.ColFirstName] = name
		row[models.ColLastName] = ""
		return
	}
	row[models.ColFirstName] = name[:idx]
	row[models.ColLastName] = strings.TrimSpace(name[idx:])
}
