package token_test

import (
	"testing"

	"github.com/KimNorgaard/go-toml/token"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	require.True(t, token.STRING.IsString())
	require.True(t, token.MULTILINELITERAL.IsString())
	require.False(t, token.INTEGER.IsString())

	require.True(t, token.LOCALDATE.IsDatetime())
	require.False(t, token.FLOAT.IsDatetime())

	require.True(t, token.WHITESPACE.IsTrivia())
	require.True(t, token.NEWLINE.IsTrivia())
	require.True(t, token.COMMENT.IsTrivia())
	require.False(t, token.BAREKEY.IsTrivia())
}

func TestPosition(t *testing.T) {
	src := []byte("ab\ncd\n\nxyz")
	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{100, 4, 4}, // clamped to end of input
	}
	for _, tt := range tests {
		line, col := token.Position(src, tt.offset)
		require.Equal(t, tt.line, line, "offset %d", tt.offset)
		require.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}
