package teco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRegBankDefaultsToZero(t *testing.T) {
	b := newQRegBank()
	v := b.get('A', false)
	assert.Zero(t, v.num)
	assert.Empty(t, v.text)
}

func TestQRegSetNumAndText(t *testing.T) {
	b := newQRegBank()
	b.setNum('A', false, 42)
	b.setText('A', false, "hello")
	v := b.get('A', false)
	assert.EqualValues(t, 42, v.num)
	assert.Equal(t, "hello", v.text)
}

func TestQRegAppendText(t *testing.T) {
	b := newQRegBank()
	b.setText('B', false, "foo")
	b.appendText('B', false, "bar")
	assert.Equal(t, "foobar", b.get('B', false).text)
}

func TestQRegLocalVsGlobalAreDistinctSlots(t *testing.T) {
	b := newQRegBank()
	b.setNum('A', false, 1)
	b.setNum('A', true, 2)
	assert.EqualValues(t, 1, b.get('A', false).num, "global A")
	assert.EqualValues(t, 2, b.get('A', true).num, "local A")
}

func TestQRegResetLocalsLeavesGlobalsAlone(t *testing.T) {
	b := newQRegBank()
	b.setNum('A', false, 1)
	b.setNum('A', true, 2)
	b.resetLocals()
	assert.EqualValues(t, 1, b.get('A', false).num, "global A survives resetLocals")
	assert.EqualValues(t, 0, b.get('A', true).num, "local A cleared by resetLocals")
}

func TestQRegPushdownRoundTrip(t *testing.T) {
	p := newQRegPushdown()
	orig := qregValue{num: 7, text: "x"}
	require.NoError(t, p.push('A', false, orig))
	entry, ok, err := p.pop(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, orig, entry.val)
}

func TestQRegPushdownOverflow(t *testing.T) {
	p := newQRegPushdown()
	for i := 0; i < MaxPushdown; i++ {
		require.NoError(t, p.push('A', false, qregValue{}), "push %d", i)
	}
	err := p.push('A', false, qregValue{})
	require.Error(t, err, "expected E_PDO on overflow")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrPDO, e.Code)
}

func TestQRegPushdownPopEmptyThrowsCPQ(t *testing.T) {
	p := newQRegPushdown()
	_, ok, err := p.pop(false)
	assert.False(t, ok, "pop on empty pushdown should not succeed")
	require.Error(t, err, "expected E_CPQ")
	e, ok2 := AsError(err)
	require.True(t, ok2)
	assert.Equal(t, ErrCPQ, e.Code)
}

// The ":]q" convertible form reports empty via ok=false instead of E_CPQ.
func TestQRegPushdownPopEmptyConvertible(t *testing.T) {
	p := newQRegPushdown()
	_, ok, err := p.pop(true)
	require.NoError(t, err, "convertible pop should not error")
	assert.False(t, ok, "pop on empty pushdown should report ok=false")
}

// "[A" immediately followed by "]A" is a no-op on register A, exercised
// through the interpreter rather than the bank directly.
func TestQRegBracketRoundTripIsNoop(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	ip.qregs.setNum('A', false, 99)
	require.NoError(t, ip.Execute("[A]A"))
	assert.EqualValues(t, 99, ip.qregs.get('A', false).num, "unchanged")
}

func TestQRegBracketUnbalancedPopThrowsCPQ(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	err := ip.Execute("]A")
	require.Error(t, err, "expected E_CPQ")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCPQ, e.Code)
}

func TestQRegColonBracketUnbalancedPopIsFailure(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	require.NoError(t, ip.Execute(":]A"))
	v, ok := ip.exprStack.PopOperand()
	require.True(t, ok, "expected a FAILURE operand on the stack")
	assert.Equal(t, FAILURE, v)
}
