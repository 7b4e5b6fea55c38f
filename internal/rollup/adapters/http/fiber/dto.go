package fiber

// RunRollupRequest represents a rollup run payload
// @Description Rollup run DTO. Mode defaults to upsert; from is a local calendar date.
type RunRollupRequest struct {
	Mode       string   `json:"mode" example:"upsert"`
	From       string   `json:"from" example:"2023-05-01"`
	AllHistory bool     `json:"all_history"`
	Metrics    []string `json:"metrics"`
}

type AccountFailureResponse struct {
	AccountID string `json:"account_id"`
	Error     string `json:"error"`
}

type RunRollupResponse struct {
	RunID             string                   `json:"run_id"`
	Mode              string                   `json:"mode"`
	AccountsProcessed int                      `json:"accounts_processed"`
	AccountsFailed    int                      `json:"accounts_failed"`
	BucketsWritten    int                      `json:"buckets_written"`
	Failures          []AccountFailureResponse `json:"failures,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_rollup"`
	Message string `json:"message" example:"rollup start cannot be in the future"`
}
