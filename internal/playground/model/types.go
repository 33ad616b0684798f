package model

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *ErrorDetail) Error() string {
	return e.Message
}

// UserQuery is the repository-level description of a users find.
type UserQuery struct {
	Status      string
	MinAge      *int
	OlderThan   *int
	EmailPrefix string
	Department  string
	Skill       string
	SortField   string
	SortDir     int
	Skip        int64
	Limit       int64
	Fields      []string
}
