package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSONDeterministic(t *testing.T) {
	val := NewMap(
		F("name", String("Acme")),
		F("active", Boolean(true)),
		F("score", Number(42)),
		F("tags", ListOf(String("a"), String("b"))),
		F("none", Null()),
	)

	want := `{"name":"Acme","active":true,"score":42,"tags":["a","b"],"none":null}`
	assert.Equal(t, want, val.JSON())
	// repeated serialization yields the same bytes
	assert.Equal(t, val.JSON(), val.JSON())
}

func TestValueJSONKeyOrderFollowsInsertion(t *testing.T) {
	ab := NewMap(F("a", Number(1)), F("b", Number(2)))
	ba := NewMap(F("b", Number(2)), F("a", Number(1)))

	assert.Equal(t, `{"a":1,"b":2}`, ab.JSON())
	assert.Equal(t, `{"b":2,"a":1}`, ba.JSON())
	assert.False(t, ab.Equal(ba))
}

func TestParseValueRoundTrip(t *testing.T) {
	raw := `{"name":"Acme","nested":{"z":1,"a":2},"list":[1,true,null,"x"]}`

	val, err := ParseValue([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, val.JSON())
	assert.Equal(t, []string{"name", "nested", "list"}, val.Keys())

	nested, ok := val.Get("nested")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, nested.Keys())
}

func TestParseValueScalars(t *testing.T) {
	for raw, want := range map[string]Value{
		`"hello"`: String("hello"),
		`3.5`:     Number(3.5),
		`true`:    Boolean(true),
		`null`:    Null(),
	} {
		val, err := ParseValue([]byte(raw))
		require.NoError(t, err)
		assert.True(t, val.Equal(want), "parse %s", raw)
	}
}

func TestParseValueRejectsGarbage(t *testing.T) {
	_, err := ParseValue([]byte(`{"unterminated":`))
	assert.Error(t, err)
}

func TestValueGetMissing(t *testing.T) {
	val := NewMap(F("a", Number(1)))
	_, ok := val.Get("b")
	assert.False(t, ok)

	_, ok = String("not a map").Get("a")
	assert.False(t, ok)
}
