package teco

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalExpr(t *testing.T, ops func(s *ExprStack)) Value {
	t.Helper()
	s := NewExprStack()
	ops(s)
	require.NoError(t, s.ReduceAll())
	v, ok := s.PopOperand()
	require.True(t, ok, "expected a single operand after ReduceAll")
	require.Equal(t, 0, s.Len(), "stack not empty after PopOperand")
	return v
}

// 2+3*4 should bind * tighter than +, giving 14.
func TestPrecedenceMulBeforeAdd(t *testing.T) {
	got := evalExpr(t, func(s *ExprStack) {
		s.PushOperand(2)
		mustPush(t, s, opAdd)
		s.PushOperand(3)
		mustPush(t, s, opMul)
		s.PushOperand(4)
	})
	assert.EqualValues(t, 14, got)
}

// 10-3-2 should associate left-to-right within the same precedence level: 5.
func TestLeftToRightSamePrecedence(t *testing.T) {
	got := evalExpr(t, func(s *ExprStack) {
		s.PushOperand(10)
		mustPush(t, s, opSub)
		s.PushOperand(3)
		mustPush(t, s, opSub)
		s.PushOperand(2)
	})
	assert.EqualValues(t, 5, got)
}

// -5+2 : unary minus binds to the very next operand only.
func TestUnaryMinus(t *testing.T) {
	got := evalExpr(t, func(s *ExprStack) {
		mustPush(t, s, opNeg)
		s.PushOperand(5)
		mustPush(t, s, opAdd)
		s.PushOperand(2)
	})
	assert.EqualValues(t, -3, got)
}

// (2+3)*4 : parenthesized group reduces ahead of the outer multiply.
func TestParenGrouping(t *testing.T) {
	s := NewExprStack()
	s.PushLParen()
	s.PushOperand(2)
	mustPush(t, s, opAdd)
	s.PushOperand(3)
	require.NoError(t, s.ReduceParen())
	mustPush(t, s, opMul)
	s.PushOperand(4)
	require.NoError(t, s.ReduceAll())
	v, ok := s.PopOperand()
	require.True(t, ok)
	assert.EqualValues(t, 20, v)
}

func TestReduceParenMissingLParen(t *testing.T) {
	s := NewExprStack()
	s.PushOperand(5)
	err := s.ReduceParen()
	require.Error(t, err, "expected E_MLP for unmatched \")\"")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrMLP, e.Code)
}

func TestReduceAllUnmatchedLParen(t *testing.T) {
	s := NewExprStack()
	s.PushLParen()
	s.PushOperand(5)
	err := s.ReduceAll()
	require.Error(t, err, "expected E_MRP for unreduced \"(\"")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrMRP, e.Code)
}

// Division by zero throws E_DIV and leaves the stack exactly as it was at
// the failing operator (lhs, op, rhs all still present).
func TestDivisionByZeroPreservesStack(t *testing.T) {
	s := NewExprStack()
	s.PushOperand(5)
	mustPush(t, s, opDiv)
	s.PushOperand(0)
	err := s.ReduceAll()
	require.Error(t, err, "expected E_DIV")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrDIV, e.Code)
	assert.Equal(t, 3, s.Len(), "lhs, op, rhs preserved")
}

func TestBitwiseOperators(t *testing.T) {
	got := evalExpr(t, func(s *ExprStack) {
		s.PushOperand(6)
		mustPush(t, s, opAnd)
		s.PushOperand(3)
	})
	assert.EqualValues(t, 2, got)
}

// ^_ is postfix: its operand is already on top of the stack when the
// operator arrives, unlike -/+ which push ahead of their operand.
func TestBitwiseComplementIsPostfix(t *testing.T) {
	got := evalExpr(t, func(s *ExprStack) {
		s.PushOperand(5)
		mustPush(t, s, opNot)
	})
	assert.EqualValues(t, ^Value(5), got)
}

func TestBitwiseComplementWithoutOperandThrowsNAB(t *testing.T) {
	s := NewExprStack()
	err := s.PushOperator(opNot)
	require.Error(t, err, "expected E_NAB for \"^_\" with no preceding operand")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrNAB, e.Code)
}

// 5^_= should read as "complement of 5, then used as the n argument of =",
// exercising the full scan path (caretUnderscoreEntry) rather than the
// stack directly.
func TestBitwiseComplementThroughInterpreter(t *testing.T) {
	ip, _, term := newInterpWithBuffer("")
	require.NoError(t, ip.Execute("5^_="))
	assert.Equal(t, strconv.FormatInt(int64(^Value(5)), 10)+"\n", term.out.String())
}

func mustPush(t *testing.T, s *ExprStack, op operator) {
	t.Helper()
	require.NoError(t, s.PushOperator(op))
}
