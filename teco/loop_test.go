package teco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCountLoopNeverExecutesBody(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	require.NoError(t, ip.Execute("0<%A>"))
	assert.EqualValues(t, 0, ip.qregs.get('A', false).num, "body never ran")
	assert.Equal(t, 0, ip.loopStack.depth())
}

func TestNegativeCountLoopNeverExecutesBody(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	require.NoError(t, ip.Execute("-1<%A>"))
	assert.EqualValues(t, 0, ip.qregs.get('A', false).num, "body never ran")
}

func TestUnboundedLoopRunsUntilSemicolonExit(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	// Count up in A until A-4 is no longer negative: ";" (no colon) exits
	// once its n argument is non-negative.
	require.NoError(t, ip.Execute("<%A QA-4;>"))
	assert.EqualValues(t, 4, ip.qregs.get('A', false).num)
}

func TestUnmatchedGreaterThanThrowsMLA(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	err := ip.Execute(">")
	require.Error(t, err, "expected E_MLA")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrMLA, e.Code)
}

func TestSemicolonOutsideLoopThrowsSNI(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	err := ip.Execute("1;")
	require.Error(t, err, "expected E_SNI")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrSNI, e.Code)
}

func TestNestedLoopsIndependentCounts(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	// Outer runs 3 times, inner runs 2 times each: %A incremented 6 times.
	require.NoError(t, ip.Execute("3<2<%A>>"))
	assert.EqualValues(t, 6, ip.qregs.get('A', false).num)
}

func TestFGreaterUnconditionallyTerminatesLoop(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	require.NoError(t, ip.Execute("5<%A F>>"))
	assert.EqualValues(t, 1, ip.qregs.get('A', false).num, "loop quit after first iteration")
	assert.Equal(t, 0, ip.loopStack.depth())
}
