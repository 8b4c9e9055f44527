package parsegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosCalcByteBasic(t *testing.T) {
	buf := Buffer[byte]("line1\nline2\nline3")
	pc := newPosCalc(buf, byteNewlines)

	assert.Equal(t, Position{Offset: 0, Line: 0, Column: 0}, pc.calculate(0))
	assert.Equal(t, Position{Offset: 4, Line: 0, Column: 4}, pc.calculate(4))
	assert.Equal(t, Position{Offset: 6, Line: 1, Column: 0}, pc.calculate(6))
	assert.Equal(t, Position{Offset: 12, Line: 2, Column: 0}, pc.calculate(12))
}

func TestPosCalcCRLFCountsOnce(t *testing.T) {
	buf := Buffer[byte]("a\r\nb\r\nc")
	pc := newPosCalc(buf, byteNewlines)

	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 0}, pc.calculate(3))
	assert.Equal(t, Position{Offset: 6, Line: 2, Column: 0}, pc.calculate(6))
}

func TestPosCalcOutOfOrderQueries(t *testing.T) {
	buf := Buffer[byte]("aa\nbb\ncc")
	pc := newPosCalc(buf, byteNewlines)

	// Query a later offset first, then an earlier one, exercising the
	// binary search over an already-cached range rather than the forward
	// scan.
	assert.Equal(t, Position{Offset: 7, Line: 2, Column: 1}, pc.calculate(7))
	assert.Equal(t, Position{Offset: 1, Line: 0, Column: 1}, pc.calculate(1))
}

func TestPosCalcWithoutPredicateIsOffsetOnly(t *testing.T) {
	buf := Buffer[byte]("whatever\nhere")
	pc := newPosCalc(buf, nil)
	assert.Equal(t, Position{Offset: 10}, pc.calculate(10))
}

func TestPositionString(t *testing.T) {
	pos := Position{Offset: 42, Line: 1, Column: 3}
	assert.Equal(t, "2:4+42", pos.String())
}

func TestPosCalcRune(t *testing.T) {
	buf := Buffer[rune]([]rune("é\nb"))
	pc := newPosCalc(buf, runeNewlines)
	assert.Equal(t, Position{Offset: 2, Line: 1, Column: 0}, pc.calculate(2))
}
