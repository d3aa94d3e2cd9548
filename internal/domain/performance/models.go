package performance

import "time"

type Criterion struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	MinRating   int      `json:"minRating"`
	MaxRating   int      `json:"maxRating"`
	Rating      *float64 `json:"rating,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}

type Category struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Weight      float64     `json:"weight"`
	Criteria    []Criterion `json:"criteria"`
}

type Template struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Version     int        `json:"version"`
	Categories  []Category `json:"categories"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TemplateSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version int    `json:"version"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Cycle struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	TemplateID         string           `json:"templateId"`
	Template           *TemplateSummary `json:"template,omitempty"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	SubmissionDeadline *time.Time       `json:"submissionDeadline,omitempty"`
	EvaluationTypes    []EvaluationType `json:"evaluationTypes"`
	Status             string           `json:"status"`
	PublishedAt        *time.Time       `json:"publishedAt,omitempty"`
	PublishedByID      string           `json:"publishedById,omitempty"`
	PublishedBy        *UserSummary     `json:"publishedBy,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type CycleFilter struct {
	Status string
}

type Evaluation struct {
	ID             string         `json:"id"`
	CycleID        string         `json:"cycleId,omitempty"`
	EmployeeID     string         `json:"employeeId"`
	EvaluatorID    string         `json:"evaluatorId"`
	EvaluationType EvaluationType `json:"evaluationType"`
	Period         string         `json:"period"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Categories     []Category     `json:"categories"`
	Status         string         `json:"status"`
	OverallRating  *float64       `json:"overallRating,omitempty"`
	Comments       string         `json:"comments"`
	SubmittedAt    *time.Time     `json:"submittedAt,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type EvaluationFilter struct {
	CycleID        string
	EmployeeID     string
	EvaluatorID    string
	EvaluationType EvaluationType
	Status         string
}

type Goal struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	CycleID     string     `json:"cycleId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Weight      float64    `json:"weight"`
	Progress    float64    `json:"progress"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type GoalFilter struct {
	EmployeeID string
	CycleID    string
	Status     string
}

// CycleSummary aggregates the evaluations generated under one cycle.
type CycleSummary struct {
	CycleID            string         `json:"cycleId"`
	EvaluationsTotal   int            `json:"evaluationsTotal"`
	ByStatus           map[string]int `json:"byStatus"`
	ByType             map[string]int `json:"byType"`
	CompletionRate     float64        `json:"completionRate"`
	AverageRating      *float64       `json:"averageRating,omitempty"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}
