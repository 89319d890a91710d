// Package access narrows row-sets to what the calling identity may see.
// The filter runs before any aggregation or by-id lookup so category users
// can never observe counts, ids or text outside their partition.
package access

import "github.com/fanpulse/backend/internal/models"

// Filter returns the subset of records visible to identity. It is pure and
// total:
//
//	nil identity                    -> input unchanged (authn is the
//	                                   caller's problem, not ours)
//	super_user                      -> input unchanged, treat as read-only
//	category_user with a category   -> exact case-sensitive mainCategory match
//	anything else                   -> empty set
func Filter(records []models.FeedbackRecord, identity *models.Identity) []models.FeedbackRecord {
	if identity == nil || identity.Role == models.RoleSuperUser {
		return records
	}
	if identity.Role != models.RoleCategoryUser || identity.Category == "" {
		return []models.FeedbackRecord{}
	}

	visible := make([]models.FeedbackRecord, 0, len(records))
	for _, rec := range records {
		if rec.MainCategory == identity.Category {
			visible = append(visible, rec)
		}
	}
	return visible
}

// CanSee reports whether one record is inside the identity's partition.
// Used by the by-id and update paths, which must deny out-of-scope ids
// rather than leak the record.
func CanSee(rec models.FeedbackRecord, identity *models.Identity) bool {
	if identity == nil || identity.Role == models.RoleSuperUser {
		return true
	}
	if identity.Role != models.RoleCategoryUser || identity.Category == "" {
		return false
	}
	return rec.MainCategory == identity.Category
}
