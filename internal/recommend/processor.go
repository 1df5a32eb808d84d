package recommend

import (
	"errors"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/rules"
	"github.com/hyperjump/pakar/internal/validation"
)

// ProcessQuery normalizes q in place, validates it and resolves its rule profile.
func ProcessQuery(q *models.RecommendQuery, defaultPageSize, maxPageSize int) (rules.Category, rules.Profile, error) {
	q.Normalize(defaultPageSize, maxPageSize)

	if err := validation.Struct(q); err != nil {
		var verr *validation.Errors
		if errors.As(err, &verr) {
			return "", rules.Profile{}, &InvalidQueryError{Fields: verr.Fields, cause: err}
		}
		return "", rules.Profile{}, &InvalidQueryError{cause: err}
	}

	cat, prof, err := rules.Lookup(q.Category, q.SubCategory)
	switch {
	case err == nil:
		return cat, prof, nil
	case errors.Is(err, rules.ErrUnknownCategory):
		return "", rules.Profile{}, invalidField("category", "oneof", err)
	case errors.Is(err, rules.ErrSubCategoryRequired):
		return "", rules.Profile{}, invalidField("sub_category", "required", err)
	default:
		return "", rules.Profile{}, invalidField("sub_category", "oneof", err)
	}
}
