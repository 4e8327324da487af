package types

import "time"

// Severity is the level a notification is shown at.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Notification struct {
	ID       string    `json:"id"`
	Severity Severity  `json:"severity"`
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
}

// ItemResult is the outcome of deleting one student, with the text shown for it.
type ItemResult struct {
	StudentID string `json:"student_id"`
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
}

// BatchReport describes one batch delete. Results keep the input order.
type BatchReport struct {
	BatchID    string       `json:"batch_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Count      int          `json:"count"`
	Results    []ItemResult `json:"results"`
	OK         bool         `json:"ok"`
}

// Failed returns the results whose delete did not succeed.
func (r BatchReport) Failed() []ItemResult {
	var out []ItemResult
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}
