package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProjectRecord is the raw on-ledger project representation. Goals and
// Amount are base-unit integer strings.
type ProjectRecord struct {
	ID                  string `json:"id"`
	Owner               string `json:"owner"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Content             string `json:"content"`
	Image               string `json:"image"`
	Goals               string `json:"goals"`
	Deadline            int64  `json:"deadline"`
	Date                int64  `json:"date"`
	Amount              string `json:"amount"`
	IsOverGoalsAllowed  bool   `json:"isOverGoalsAllowed"`
	IsZeroAmountAllowed bool   `json:"isZeroAmountAllowed"`
}

// FundRecord is the raw on-ledger funding representation.
type FundRecord struct {
	Owner   string `json:"owner"`
	Amount  string `json:"amount"`
	Message string `json:"message"`
	Date    int64  `json:"date"`
}

// CreateRecord carries project creation parameters in ledger form.
type CreateRecord struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Goals               *big.Int `json:"goals"`
	Deadline            int64    `json:"deadline"`
	Date                int64    `json:"date"`
	Image               string   `json:"image"`
	Content             string   `json:"content"`
	IsOverGoalsAllowed  bool     `json:"isOverGoalsAllowed"`
	IsZeroAmountAllowed bool     `json:"isZeroAmountAllowed"`
}

// Contract is the remote ledger's fixed method surface.
type Contract interface {
	// GetProject returns the raw record, or (nil, nil) when the ledger
	// has no record for id.
	GetProject(ctx context.Context, id string) (*ProjectRecord, error)
	GetProjects(ctx context.Context) ([]ProjectRecord, error)
	GetFunders(ctx context.Context, id string) ([]FundRecord, error)
	// FundToProject submits a funding transaction carrying value base
	// units from the active signer.
	FundToProject(ctx context.Context, id, message string, timestamp int64, value *big.Int) error
	CreateProject(ctx context.Context, rec CreateRecord) error
}

// Ledger-emitted event names.
const (
	EventNewFunder      = "NewFunder"
	EventProjectCreated = "ProjectCreated"
)

// Event is a ledger-emitted notification.
type Event struct {
	Name string `json:"name"`
	// Funder is the funding account for NewFunder events.
	Funder string `json:"funder,omitempty"`
}

// EventStream delivers ledger events as they are observed.
type EventStream interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// AccountSource reports the currently bound signing account, nil when
// the session is read-only.
type AccountSource interface {
	Account() *common.Address
}
