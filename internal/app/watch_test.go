package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fundconn/fundconn/internal/app"
	"github.com/fundconn/fundconn/internal/ledger"
)

func TestWatchProjectReloadsAndNotifies(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	rec := projectRecord("7", otherOwner.Hex())
	f.contract.On("GetProject", mock.Anything, "7").Return(rec, nil)
	f.contract.On("GetFunders", mock.Anything, "7").Return([]ledger.FundRecord(nil), nil)

	var refreshed []app.ProjectDetail
	unsubscribe := f.client.WatchProject(ctx, "7", func(d app.ProjectDetail) {
		refreshed = append(refreshed, d)
	})
	defer unsubscribe()

	f.hub.Dispatch(ledger.Event{Name: ledger.EventNewFunder, Funder: otherOwner.Hex()})

	require.Len(t, refreshed, 1)
	require.Equal(t, "7", refreshed[0].Project.ID)

	var notified bool
	for _, n := range f.recorder.Notices() {
		if n.Title == "Funds status" {
			notified = true
		}
	}
	require.True(t, notified, "another account's donation is announced")
}

func TestWatchProjectSquelchesOwnDonation(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	rec := projectRecord("7", testAccount.Hex())
	f.contract.On("GetProject", mock.Anything, "7").Return(rec, nil)
	f.contract.On("GetFunders", mock.Anything, "7").Return([]ledger.FundRecord(nil), nil)

	var reloads int
	unsubscribe := f.client.WatchProject(ctx, "7", func(app.ProjectDetail) {
		reloads++
	})
	defer unsubscribe()

	f.hub.Dispatch(ledger.Event{Name: ledger.EventNewFunder, Funder: testAccount.Hex()})

	require.Equal(t, 1, reloads, "the reload still happens for own donations")
	for _, n := range f.recorder.Notices() {
		require.NotEqual(t, "Funds status", n.Title, "own donation is not announced")
	}
}

func TestWatchProjectsReloadsList(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.contract.On("GetProjects", mock.Anything).Return([]ledger.ProjectRecord{
		*projectRecord("1", otherOwner.Hex()),
	}, nil)

	var lists [][]ledger.Project
	unsubscribe := f.client.WatchProjects(ctx, func(projects []ledger.Project) {
		lists = append(lists, projects)
	})
	defer unsubscribe()

	f.hub.Dispatch(ledger.Event{Name: ledger.EventProjectCreated})

	require.Len(t, lists, 1)
	require.Len(t, lists[0], 1)
	require.Equal(t, "1", lists[0][0].ID)
}

func TestRunPumpsStreamIntoHub(t *testing.T) {
	f := newFixture(t, false)

	f.contract.On("GetProjects", mock.Anything).Return([]ledger.ProjectRecord(nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	unsubscribe := f.client.WatchProjects(ctx, func([]ledger.Project) {
		reloaded <- struct{}{}
	})
	defer unsubscribe()

	stream := make(chan ledger.Event, 1)
	stream <- ledger.Event{Name: ledger.EventProjectCreated}
	close(stream)

	require.NoError(t, f.client.Run(ctx, streamFunc(func(context.Context) (<-chan ledger.Event, error) {
		return stream, nil
	})))
	<-reloaded
}

// streamFunc adapts a function to ledger.EventStream.
type streamFunc func(ctx context.Context) (<-chan ledger.Event, error)

func (f streamFunc) Watch(ctx context.Context) (<-chan ledger.Event, error) { return f(ctx) }
