package performance

import "hrportal/internal/platform/apperror"

// CloneCategories rebuilds the category tree field by field. The result
// shares no slices or pointers with src.
func CloneCategories(src []Category) []Category {
	out := make([]Category, len(src))
	for i, category := range src {
		out[i] = Category{
			Name:        category.Name,
			Description: category.Description,
			Weight:      category.Weight,
			Criteria:    cloneCriteria(category.Criteria),
		}
	}
	return out
}

func cloneCriteria(src []Criterion) []Criterion {
	out := make([]Criterion, len(src))
	for i, criterion := range src {
		out[i] = Criterion{
			Title:       criterion.Title,
			Description: criterion.Description,
			MinRating:   criterion.MinRating,
			MaxRating:   criterion.MaxRating,
			Comment:     criterion.Comment,
		}
		if criterion.Rating != nil {
			rating := *criterion.Rating
			out[i].Rating = &rating
		}
	}
	return out
}

// ValidateCategories checks a template structure. Ratings are stripped from
// the returned copy since templates never carry answers.
func ValidateCategories(categories []Category) ([]Category, error) {
	clean := CloneCategories(categories)
	total := 0.0
	for i := range clean {
		category := &clean[i]
		if category.Name == "" {
			return nil, apperror.Newf(ErrInvalidCategories, "category %d has no name", i+1)
		}
		if category.Weight < 0 {
			return nil, apperror.Newf(ErrInvalidCategories, "category %q has a negative weight", category.Name)
		}
		total += category.Weight
		for j := range category.Criteria {
			criterion := &category.Criteria[j]
			if criterion.Title == "" {
				return nil, apperror.Newf(ErrInvalidCategories, "criterion %d in %q has no title", j+1, category.Name)
			}
			if criterion.MinRating >= criterion.MaxRating {
				return nil, ErrInvalidRatingRange
			}
			criterion.Rating = nil
			criterion.Comment = ""
		}
	}
	if total > MaxCategoryWeight {
		return nil, ErrWeightsExceeded
	}
	return clean, nil
}

// applyAnswers copies ratings and comments from input onto the stored
// structure, position by position. The structure itself is never changed.
func applyAnswers(stored, input []Category) ([]Category, error) {
	if len(stored) != len(input) {
		return nil, ErrCategoriesMismatch
	}
	out := CloneCategories(stored)
	for i := range out {
		if len(out[i].Criteria) != len(input[i].Criteria) {
			return nil, ErrCategoriesMismatch
		}
		for j := range out[i].Criteria {
			criterion := &out[i].Criteria[j]
			answer := input[i].Criteria[j]
			criterion.Comment = answer.Comment
			criterion.Rating = nil
			if answer.Rating == nil {
				continue
			}
			rating := *answer.Rating
			if rating < float64(criterion.MinRating) || rating > float64(criterion.MaxRating) {
				return nil, apperror.Newf(ErrRatingOutOfRange, "rating for %q must be between %d and %d", criterion.Title, criterion.MinRating, criterion.MaxRating)
			}
			criterion.Rating = &rating
		}
	}
	return out, nil
}
