package ledger

// Status describes how a project's funded amount relates to its goal.
type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusReached   Status = "Reached"
	StatusSurpasses Status = "Surpasses"
)

// Project is a normalized, display-ready campaign record. Amount and
// Goals are decimal display strings; timestamps are ms-epoch integers.
type Project struct {
	ID                string `json:"id"`
	Owner             string `json:"owner"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ContentID         string `json:"content"`
	Image             string `json:"image"`
	Goals             string `json:"goals"`
	Deadline          int64  `json:"deadline"`
	Date              int64  `json:"date"`
	Amount            string `json:"amount"`
	Status            Status `json:"status"`
	RemainingDays     int    `json:"remaining_days"`
	OverGoalsAllowed  bool   `json:"is_over_goals"`
	ZeroAmountAllowed bool   `json:"is_zero_allowed"`
}

// Fund is a normalized funding record. Funds are immutable once
// recorded and append-only per project.
type Fund struct {
	Owner   string `json:"owner"`
	Amount  string `json:"amount"`
	Message string `json:"message"`
	Date    int64  `json:"date"`
}

// CreateRequest defines project creation inputs. Goals is a decimal
// display string converted to base units at submission.
type CreateRequest struct {
	Title             string
	Description       string
	ContentID         string
	Goals             string
	Deadline          int64
	Image             string
	OverGoalsAllowed  bool
	ZeroAmountAllowed bool
}
