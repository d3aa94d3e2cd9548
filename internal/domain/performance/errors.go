package performance

import "hrportal/internal/platform/apperror"

var (
	ErrCycleNotFound      = apperror.NotFound("evaluation cycle not found")
	ErrTemplateNotFound   = apperror.NotFound("evaluation template not found")
	ErrEvaluationNotFound = apperror.NotFound("evaluation not found")
	ErrGoalNotFound       = apperror.NotFound("goal not found")

	ErrCycleAlreadyPublished = apperror.Validation("Cycle is already published. Use republish instead.")
	ErrCycleClosed           = apperror.Validation("Cycle is closed and cannot be published.")
	ErrCycleNotDraft         = apperror.Validation("only draft cycles can be edited")
	ErrCycleNotPublished     = apperror.Validation("only published cycles can be closed")
	ErrInvalidDateRange      = apperror.Validation("startDate must not be after endDate")
	ErrInvalidDeadline       = apperror.Validation("submissionDeadline must not be before startDate")
	ErrNoEvaluationTypes     = apperror.Validation("at least one evaluation type is required")
	ErrInvalidEvaluationType = apperror.Validation("invalid evaluation type")

	ErrInvalidCategories  = apperror.Validation("invalid template categories")
	ErrWeightsExceeded    = apperror.Validation("category weights must not sum to more than 100")
	ErrInvalidRatingRange = apperror.Validation("criterion minRating must be below maxRating")
	ErrTemplateInUse      = apperror.Conflict("template is referenced by an evaluation cycle")

	ErrEvaluationExists      = apperror.Conflict("an evaluation already exists for this employee, evaluator, type and period")
	ErrEvaluationNotDraft    = apperror.Validation("only draft evaluations can be edited or submitted")
	ErrInvalidTransition     = apperror.Validation("evaluation status transition not allowed")
	ErrRatingOutOfRange      = apperror.Validation("rating outside the criterion range")
	ErrCategoriesMismatch    = apperror.Validation("categories do not match the evaluation structure")
	ErrEvaluationDatesNeeded = apperror.Validation("startDate and endDate are required without a cycle")
	ErrCycleTypeGenerated    = apperror.Validation("only CLIENT evaluations can be added to a cycle by hand; other types are generated on publish")
	ErrCycleClosedForAdds    = apperror.Validation("Cycle is closed and cannot take new evaluations.")

	ErrInvalidGoalStatus = apperror.Validation("invalid goal status")
	ErrInvalidProgress   = apperror.Validation("progress must be between 0 and 100")
	ErrInvalidWeight     = apperror.Validation("weight must not be negative")
)
