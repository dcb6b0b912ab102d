package toml_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-toml"
)

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		value    *toml.Value
		expected string
	}{
		{toml.NewString("plain"), `"plain"`},
		{toml.NewString("with \"quotes\" and\nnewline"), `"with \"quotes\" and\nnewline"`},
		{toml.NewInteger(42), "42"},
		{toml.NewInteger(-17), "-17"},
		{toml.NewFloat(3.14), "3.14"},
		{toml.NewFloat(1), "1.0"},
		{toml.NewFloat(math.Inf(1)), "inf"},
		{toml.NewFloat(math.Inf(-1)), "-inf"},
		{toml.NewFloat(math.NaN()), "nan"},
		{toml.NewBool(true), "true"},
		{toml.NewBool(false), "false"},
		{toml.NewLocalDate(time.Date(1979, 5, 27, 0, 0, 0, 0, time.UTC)), "1979-05-27"},
		{toml.NewLocalTime(time.Date(0, 1, 1, 7, 32, 0, 0, time.UTC)), "07:32:00"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.value.Raw())
	}
}

func TestValueAccessErrors(t *testing.T) {
	v := toml.NewInteger(1)

	_, err := v.AsString()
	var access *toml.ValueAccessError
	require.ErrorAs(t, err, &access)
	require.Equal(t, toml.KindString, access.Want)
	require.Equal(t, toml.KindInteger, access.Got)

	_, err = v.AsBool()
	require.Error(t, err)
	_, err = v.AsArray()
	require.Error(t, err)
	_, err = v.AsTime()
	require.Error(t, err)

	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestValueSetRegeneratesSpelling(t *testing.T) {
	doc, err := toml.Parse([]byte("n = 0xFF # hex\n"))
	require.NoError(t, err)

	v := doc.Get("n").(*toml.Value)
	require.Equal(t, "0xFF", v.Raw())

	// A programmatic change drops the old spelling but not the trivia.
	v.SetInt(256)
	require.Equal(t, "n = 256 # hex\n", doc.String())

	v.SetBool(true)
	require.Equal(t, toml.KindBool, v.Kind())
	require.Equal(t, "n = true # hex\n", doc.String())
}

func TestNewArrayValue(t *testing.T) {
	doc := toml.NewDocument()
	v := toml.NewArray()
	arr, err := v.AsArray()
	require.NoError(t, err)
	arr.Append(toml.NewInteger(1))
	arr.Append(toml.NewInteger(2))

	require.NoError(t, doc.Insert([]string{"nums"}, v))
	require.Equal(t, "nums = [1, 2]\n", doc.String())
}
