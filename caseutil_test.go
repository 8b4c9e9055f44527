package parsegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldRuneASCII(t *testing.T) {
	assert.Equal(t, foldRune('a'), foldRune('A'))
	assert.Equal(t, foldRune('z'), foldRune('Z'))
	assert.NotEqual(t, foldRune('a'), foldRune('b'))
}

func TestFoldRuneWorkaround(t *testing.T) {
	assert.Equal(t, rune('ſ'), foldRune('ſ'))
	assert.NotEqual(t, foldRune('ſ'), foldRune('S'))

	assert.Equal(t, rune('K'), foldRune('K'))
	assert.NotEqual(t, foldRune('K'), foldRune('k'))
}

func TestFoldRuneNoCaseVariantIsFixedPoint(t *testing.T) {
	assert.Equal(t, rune('5'), foldRune('5'))
	assert.Equal(t, rune('好'), foldRune('好'))
}

func TestFoldByteASCIIOnly(t *testing.T) {
	assert.Equal(t, byte('a'), foldByte('A'))
	assert.Equal(t, byte('z'), foldByte('Z'))
	assert.Equal(t, byte('5'), foldByte('5'))
}
