package performance

type EvaluationType string

const (
	TypeSelf        EvaluationType = "SELF"
	TypeManager     EvaluationType = "MANAGER"
	TypePeer        EvaluationType = "PEER"
	TypeSubordinate EvaluationType = "SUBORDINATE"
	TypeClient      EvaluationType = "CLIENT"
)

func (t EvaluationType) Valid() bool {
	switch t {
	case TypeSelf, TypeManager, TypePeer, TypeSubordinate, TypeClient:
		return true
	}
	return false
}

const (
	CycleStatusDraft     = "draft"
	CycleStatusPublished = "published"
	CycleStatusClosed    = "closed"

	EvaluationStatusDraft     = "draft"
	EvaluationStatusSubmitted = "submitted"
	EvaluationStatusReviewed  = "reviewed"
	EvaluationStatusApproved  = "approved"
	EvaluationStatusRejected  = "rejected"

	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusCancelled = "cancelled"
)

// MaxCategoryWeight caps the summed weights of a template's categories.
const MaxCategoryWeight = 100.0

// reviewTransitions lists the statuses a reviewer may move an evaluation to.
var reviewTransitions = map[string][]string{
	EvaluationStatusSubmitted: {EvaluationStatusReviewed, EvaluationStatusApproved, EvaluationStatusRejected},
	EvaluationStatusReviewed:  {EvaluationStatusApproved, EvaluationStatusRejected},
}

func validGoalStatus(status string) bool {
	switch status {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled:
		return true
	}
	return false
}
