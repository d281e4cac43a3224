package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	Init()

	require.NotNil(t, Ticks)
	require.NotNil(t, DispatchOutcomes)
}

func TestHelpersRecord(t *testing.T) {
	Init()

	before := testutil.ToFloat64(Transitions)
	Inc(Transitions)
	assert.Equal(t, before+1, testutil.ToFloat64(Transitions))

	IncLabel(DispatchOutcomes, "delivered")
	assert.GreaterOrEqual(t, testutil.ToFloat64(DispatchOutcomes.WithLabelValues("delivered")), float64(1))

	Set(LiveStreamers, 3)
	assert.Equal(t, float64(3), testutil.ToFloat64(LiveStreamers))
}

func TestHelpersNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Inc(nil)
		IncLabel(nil, "x")
		Set(nil, 1)
	})
}
