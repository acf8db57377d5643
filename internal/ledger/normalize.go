package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/fundconn/fundconn/internal/units"
)

const dayMillis = 24 * 60 * 60 * 1000

// normalizeProject converts a raw ledger record into the display-ready
// form: base units become decimal strings and status/remainingDays are
// derived.
func normalizeProject(rec ProjectRecord, now time.Time) (Project, error) {
	goalsBase, err := units.ParseBase(rec.Goals)
	if err != nil {
		return Project{}, fmt.Errorf("project %s goals: %w", rec.ID, err)
	}
	amountBase, err := units.ParseBase(rec.Amount)
	if err != nil {
		return Project{}, fmt.Errorf("project %s amount: %w", rec.ID, err)
	}

	status := StatusOngoing
	switch amountBase.Cmp(goalsBase) {
	case 1:
		status = StatusSurpasses
	case 0:
		status = StatusReached
	}

	return Project{
		ID:                rec.ID,
		Owner:             rec.Owner,
		Title:             rec.Title,
		Description:       rec.Description,
		ContentID:         rec.Content,
		Image:             rec.Image,
		Goals:             units.FromBase(goalsBase),
		Deadline:          rec.Deadline,
		Date:              rec.Date,
		Amount:            units.FromBase(amountBase),
		Status:            status,
		RemainingDays:     remainingDays(now, rec.Deadline),
		OverGoalsAllowed:  rec.IsOverGoalsAllowed,
		ZeroAmountAllowed: rec.IsZeroAmountAllowed,
	}, nil
}

// remainingDays is the rounded absolute distance between now and the
// deadline, in days. The absolute value means a passed deadline reads
// the same as a future one; that matches the upstream contract viewer
// behavior.
func remainingDays(now time.Time, deadlineMillis int64) int {
	diff := now.UnixMilli() - deadlineMillis
	return int(math.Round(math.Abs(float64(diff)) / dayMillis))
}

func normalizeFund(rec FundRecord) (Fund, error) {
	amountBase, err := units.ParseBase(rec.Amount)
	if err != nil {
		return Fund{}, fmt.Errorf("fund amount: %w", err)
	}
	return Fund{
		Owner:   rec.Owner,
		Amount:  units.FromBase(amountBase),
		Message: rec.Message,
		Date:    rec.Date,
	}, nil
}
