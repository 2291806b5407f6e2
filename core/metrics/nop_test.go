package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopTimer(t *testing.T) {
	tm := NopTimer()
	require.NotNil(t, tm)
	require.NotPanics(t, tm.ObserveDuration)
}
