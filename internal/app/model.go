package app

import "github.com/fundconn/fundconn/internal/ledger"

// ProjectDetail is a fully hydrated project view: the normalized
// campaign record, its funding history, and the rehydrated body
// content ready for display.
type ProjectDetail struct {
	Project ledger.Project `json:"project"`
	Funds   []ledger.Fund  `json:"funds"`
	Content string         `json:"content"`
}

// StagedUpload is an editor image that has not been published yet.
// LocalRef is the reference the draft body currently uses for it.
type StagedUpload struct {
	LocalRef string
	Data     []byte
}

// Draft collects everything needed to publish a new project. Goals is
// a decimal display string; Deadline is a ms-epoch timestamp.
type Draft struct {
	Title             string
	Description       string
	Goals             string
	Deadline          int64
	Cover             []byte
	Body              string
	Images            []StagedUpload
	OverGoalsAllowed  bool
	ZeroAmountAllowed bool
}
