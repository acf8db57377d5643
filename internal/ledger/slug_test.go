package ledger_test

import (
	"testing"

	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	p := ledger.Project{ID: "3", Title: "Community  Garden Build"}
	require.Equal(t, "3-community-garden-build", ledger.Slug(p))

	require.Equal(t, "4", ledger.Slug(ledger.Project{ID: "4"}))
}

func TestCanonicalID(t *testing.T) {
	require.Equal(t, "3", ledger.CanonicalID("3-community-garden-build"))
	require.Equal(t, "3", ledger.CanonicalID("3"))
	require.Equal(t, "", ledger.CanonicalID(""))
}
