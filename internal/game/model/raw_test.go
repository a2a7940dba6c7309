package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int
		wantOK bool
	}{
		{"int", 72, 72, true},
		{"zero", 0, 0, true},
		{"int64", int64(9), 9, true},
		{"whole float", 65.0, 65, true},
		{"fraction", 65.5, 0, false},
		{"negative", -3, 0, false},
		{"negative float", -3.0, 0, false},
		{"numeric string", " 21 ", 21, true},
		{"float string", "21.0", 21, true},
		{"text", "abc", 0, false},
		{"empty string", "", 0, false},
		{"json number", json.Number("14"), 14, true},
		{"json float number", json.Number("14.0"), 14, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRawGame_First(t *testing.T) {
	raw := RawGame{"a": "", "b": nil, "c": "value", "d": 0}

	v, ok := raw.First("a", "b", "c")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	v, ok = raw.First("d")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = raw.First("a", "b", "missing")
	assert.False(t, ok)
}

func TestRawGame_String(t *testing.T) {
	raw := RawGame{"n": 12.0, "s": "  text ", "j": json.Number("7")}

	assert.Equal(t, "12", raw.String("n"))
	assert.Equal(t, "text", raw.String("s"))
	assert.Equal(t, "7", raw.String("j"))
	assert.Equal(t, "", raw.String("missing"))
}

func TestRawGame_Map(t *testing.T) {
	t.Run("native object", func(t *testing.T) {
		raw := RawGame{"score": map[string]any{"home": 1}}
		m, ok := raw.Map("score")
		assert.True(t, ok)
		assert.Equal(t, 1, m["home"])
	})

	t.Run("encoded object", func(t *testing.T) {
		raw := RawGame{"score": `{"home":1,"away":2}`}
		m, ok := raw.Map("score")
		assert.True(t, ok)
		assert.Equal(t, 2.0, m["away"])
	})

	t.Run("not an object", func(t *testing.T) {
		raw := RawGame{"score": "72-65"}
		_, ok := raw.Map("score")
		assert.False(t, ok)
	})
}

func TestIsPresent(t *testing.T) {
	assert.False(t, IsPresent(nil))
	assert.False(t, IsPresent(" "))
	assert.True(t, IsPresent("0"))
	assert.True(t, IsPresent(0))
}

func TestGame_IsEligible(t *testing.T) {
	three, one := 3, 1

	tests := []struct {
		name string
		game Game
		want bool
	}{
		{"final with scores", Game{Status: StatusFinal, HomeScore: &three, AwayScore: &one}, true},
		{"completed with scores", Game{Status: StatusCompleted, HomeScore: &three, AwayScore: &one}, true},
		{"completed without scores", Game{Status: StatusCompleted}, false},
		{"scheduled with scores", Game{Status: StatusScheduled, HomeScore: &three, AwayScore: &one}, false},
		{"canceled with scores", Game{Status: StatusCanceled, HomeScore: &three, AwayScore: &one}, false},
		{"one score", Game{Status: StatusFinal, HomeScore: &three}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.game.IsEligible())
		})
	}
}
