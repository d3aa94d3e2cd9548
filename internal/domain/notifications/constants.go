package notifications

const (
	TypeReviewAssigned      = "review_assigned"
	TypeEvaluationSubmitted = "evaluation_submitted"
	TypeEvaluationReviewed  = "evaluation_reviewed"
)
