package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntoContextRoundTrip(t *testing.T) {
	run := &Run{CaseID: "500-001", NoColor: true}
	ctx := IntoContext(context.Background(), run)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Same(t, run, got)
	require.Equal(t, "500-001", CaseIDFrom(ctx))
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	require.False(t, ok)
	require.Nil(t, got)
	require.Empty(t, CaseIDFrom(context.Background()))
}

func TestFromContextNilRun(t *testing.T) {
	ctx := IntoContext(context.Background(), nil)
	_, ok := FromContext(ctx)
	require.False(t, ok)
	require.Empty(t, CaseIDFrom(ctx))
}
