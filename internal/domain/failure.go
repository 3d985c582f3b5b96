package domain

// CheckFailure is a failed check of a graded submission, as stored for later review
type CheckFailure struct {
	GradeID    string `json:"grade_id"`
	Submission string `json:"submission"`
	Topic      string `json:"topic"`
	CheckName  string `json:"check_name"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Resolved   bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// GradesMeta contains metadata about a grading run
type GradesMeta struct {
	Topic             string  `json:"topic"`
	TotalSubmissions  int     `json:"total_submissions"`
	PassedSubmissions int     `json:"passed_submissions"`
	FailedSubmissions int     `json:"failed_submissions"`
	FailedChecks      int     `json:"failed_checks"`
	DisabledChecks    int     `json:"disabled_checks"`
	LoadErrors        int     `json:"load_errors"`
	Duration          string  `json:"duration"`
	DurationSeconds   float64 `json:"duration_seconds"`
	Workers           int     `json:"workers"`
	Timestamp         string  `json:"timestamp"`
}

// GradesOutput is the complete output structure for a grading run
type GradesOutput struct {
	Meta    GradesMeta     `json:"meta"`
	Details []CheckFailure `json:"details"`
}
