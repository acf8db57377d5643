// Package ledger exposes typed operations against the remote
// crowdfunding contract and normalizes its records for display.
package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fundconn/fundconn/internal/loading"
	"github.com/fundconn/fundconn/internal/notify"
	"github.com/fundconn/fundconn/internal/units"
)

const rejectedGuidance = "Your provider refused the transaction. Try reset your provider, reload network and send funds again"

// Facade handles ledger operations. The contract handle is rebound by
// the session layer whenever the provider or signer changes; a call
// racing a rebind may resolve against the previous binding, so callers
// recheck the active binding before applying results.
type Facade struct {
	mu       sync.Mutex
	contract Contract

	accounts AccountSource
	notifier notify.Notifier
	loading  *loading.Tracker
	logger   *slog.Logger
}

// NewFacade creates a ledger facade. The contract starts unbound.
func NewFacade(accounts AccountSource, notifier notify.Notifier, tracker *loading.Tracker, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &Facade{
		accounts: accounts,
		notifier: notifier,
		loading:  tracker,
		logger:   logger,
	}
}

// Bind replaces the active contract handle.
func (f *Facade) Bind(c Contract) {
	f.mu.Lock()
	f.contract = c
	f.mu.Unlock()
}

// Bound reports whether a contract handle is bound.
func (f *Facade) Bound() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contract != nil
}

func (f *Facade) bound() (Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contract == nil {
		return nil, ErrUnbound
	}
	return f.contract, nil
}

// FetchProject returns the normalized project for a slug or ledger id.
func (f *Facade) FetchProject(ctx context.Context, id string) (*Project, error) {
	f.loading.Begin()
	defer f.loading.End()

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: missing project id", ErrInvalidInput)
	}
	contract, err := f.bound()
	if err != nil {
		return nil, err
	}

	rec, err := contract.GetProject(ctx, CanonicalID(id))
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", id, err)
	}
	if rec == nil {
		return nil, ErrProjectNotFound
	}

	proj, err := normalizeProject(*rec, time.Now())
	if err != nil {
		return nil, err
	}
	return &proj, nil
}

// FetchProjects returns the normalized project list, nil when the
// ledger holds none.
func (f *Facade) FetchProjects(ctx context.Context) ([]Project, error) {
	f.loading.Begin()
	defer f.loading.End()

	contract, err := f.bound()
	if err != nil {
		return nil, err
	}

	recs, err := contract.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	now := time.Now()
	projects := make([]Project, 0, len(recs))
	for _, rec := range recs {
		proj, err := normalizeProject(rec, now)
		if err != nil {
			return nil, err
		}
		projects = append(projects, proj)
	}
	return projects, nil
}

// FetchFunders returns the normalized fund list for a project, nil when
// it has no funders yet.
func (f *Facade) FetchFunders(ctx context.Context, id string) ([]Fund, error) {
	f.loading.Begin()
	defer f.loading.End()

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: missing project id", ErrInvalidInput)
	}
	contract, err := f.bound()
	if err != nil {
		return nil, err
	}

	recs, err := contract.GetFunders(ctx, CanonicalID(id))
	if err != nil {
		return nil, fmt.Errorf("fetching funders for %s: %w", id, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	funds := make([]Fund, 0, len(recs))
	for _, rec := range recs {
		fund, err := normalizeFund(rec)
		if err != nil {
			return nil, err
		}
		funds = append(funds, fund)
	}
	return funds, nil
}

// Donate submits a funding transaction for amount display units. The
// signer must be bound; zero-value donations are checked against the
// project's policy before anything is submitted.
func (f *Facade) Donate(ctx context.Context, id, amount, message string) error {
	f.loading.Begin()
	defer f.loading.End()

	contract, err := f.bound()
	if err != nil {
		return err
	}
	if f.accounts == nil || f.accounts.Account() == nil {
		return ErrNoSigner
	}

	value, err := units.ToBase(amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if value.Sign() == 0 {
		rec, err := contract.GetProject(ctx, CanonicalID(id))
		if err != nil {
			return fmt.Errorf("checking funding policy for %s: %w", id, err)
		}
		if rec != nil && !rec.IsZeroAmountAllowed {
			f.notifier.Show(notify.Warn("Funds status", "This project does not accept zero-amount funding"))
			return ErrZeroAmountNotAllowed
		}
	}

	if err := contract.FundToProject(ctx, CanonicalID(id), message, time.Now().UnixMilli(), value); err != nil {
		f.logger.Warn("funding transaction refused", "project", id, "error", err)
		f.notifier.Show(notify.Sticky("Funds status", rejectedGuidance))
		return fmt.Errorf("%w: %v", ErrTransactionRejected, err)
	}
	return nil
}

// Create submits project creation with goals converted to base units
// and the current time stamped as the creation date.
func (f *Facade) Create(ctx context.Context, req CreateRequest) error {
	f.loading.Begin()
	defer f.loading.End()

	contract, err := f.bound()
	if err != nil {
		return err
	}
	if f.accounts == nil || f.accounts.Account() == nil {
		return ErrNoSigner
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidInput)
	}

	goals, err := units.ToBase(req.Goals)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rec := CreateRecord{
		Title:               req.Title,
		Description:         req.Description,
		Goals:               goals,
		Deadline:            req.Deadline,
		Date:                time.Now().UnixMilli(),
		Image:               req.Image,
		Content:             req.ContentID,
		IsOverGoalsAllowed:  req.OverGoalsAllowed,
		IsZeroAmountAllowed: req.ZeroAmountAllowed,
	}
	if err := contract.CreateProject(ctx, rec); err != nil {
		f.logger.Warn("project creation refused", "title", req.Title, "error", err)
		f.notifier.Show(notify.Sticky("Project status", rejectedGuidance))
		return fmt.Errorf("%w: %v", ErrTransactionRejected, err)
	}

	f.notifier.Show(notify.Info("Project status", "Your project has successfully created"))
	return nil
}
