package parsegen

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddSourceFallback(t *testing.T) {
	lexical := newTestRegistry()
	require.NoError(t, lexical.Add("ws", NewLiteral(bbuf(" "))))

	grammar := newTestRegistry()
	grammar.AddSource(lexical)
	require.NoError(t, grammar.Add("p", NewName[byte]("ws", grammar)))

	p, err := grammar.Build("p")
	require.NoError(t, err)

	matched, _, end, err := p.Run(bbuf(" "))
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, 1, end)
}

func TestRegistryGetMissReturnsFalse(t *testing.T) {
	reg := newTestRegistry()
	_, ok := reg.Get("nope")
	assert.False(t, ok)
}

func TestPrecompileSucceedsOnWellFormedGrammar(t *testing.T) {
	reg := newTestRegistry()
	require.NoError(t, reg.Add("digit", NewRange(func(b byte) bool { return b >= '0' && b <= '9' })))
	require.NoError(t, reg.Add("number", NewName[byte]("digit", reg).Repeating()))
	require.NoError(t, reg.Precompile())
}

func TestLoggerReceivesResolutionTrace(t *testing.T) {
	var buf loggedLines
	reg := NewRegistry[byte](zerolog.New(&buf))
	require.NoError(t, reg.Add("p", NewLiteral(bbuf("x"))))
	require.NoError(t, reg.Add("ref", NewName[byte]("p", reg)))

	parser, err := reg.Build("ref")
	require.NoError(t, err)

	matched, _, _, err := parser.Run(bbuf("x"))
	require.NoError(t, err)
	assert.True(t, matched)
	assert.NotEmpty(t, buf)
}

type loggedLines [][]byte

func (l *loggedLines) Write(p []byte) (int, error) {
	cp := append([]byte(nil), p...)
	*l = append(*l, cp)
	return len(p), nil
}
