package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	entry := Text{Value: "hello"}.Entry(3)
	assert.Equal(t, 3, entry.Slot)
	assert.Equal(t, "txt", entry.Item.ID)
	assert.Equal(t, map[string]any{"name": "hello"}, entry.Item.Data)
}

func TestNumberFormatting(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{5, "5"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1000000, "1000000"},
	}
	for _, tc := range cases {
		entry := Num(tc.value).Entry(0)
		assert.Equal(t, tc.want, entry.Item.Data["name"], "formatting %v", tc.value)
	}
}

func TestVariableScopes(t *testing.T) {
	assert.Equal(t, ScopeUnsaved, Var("x").Scope)

	entry := ScopedVar("count", ScopeLocal).Entry(1)
	assert.Equal(t, "var", entry.Item.ID)
	assert.Equal(t, "count", entry.Item.Data["name"])
	assert.Equal(t, "local", entry.Item.Data["scope"])
}

func TestLocation(t *testing.T) {
	entry := Location{X: 1.5, Y: 64, Z: -7, Pitch: 90, Yaw: 45}.Entry(0)
	require.Equal(t, "loc", entry.Item.ID)
	assert.Equal(t, false, entry.Item.Data["isBlock"])

	loc, ok := entry.Item.Data["loc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.5, loc["x"])
	assert.Equal(t, float64(64), loc["y"])
	assert.Equal(t, float64(45), loc["yaw"])
}

func TestStack(t *testing.T) {
	entry := Stack{ID: "minecraft:stone"}.Entry(0)
	assert.Equal(t, "item", entry.Item.ID)
	assert.Equal(t, `{Count:1b,id:"minecraft:stone"}`, entry.Item.Data["item"], "count defaults to 1")

	entry = Stack{ID: "minecraft:arrow", Count: 16}.Entry(0)
	assert.Equal(t, `{Count:16b,id:"minecraft:arrow"}`, entry.Item.Data["item"])
}

func TestSoundAndEffects(t *testing.T) {
	snd := Sound{Name: "Pling", Pitch: 1.2, Volume: 2}.Entry(0)
	assert.Equal(t, "snd", snd.Item.ID)
	assert.Equal(t, 1.2, snd.Item.Data["pitch"])

	pot := Potion{Name: "Speed", Duration: 200, Amplifier: 1}.Entry(0)
	assert.Equal(t, "pot", pot.Item.ID)
	assert.Equal(t, float64(200), pot.Item.Data["dur"])

	part := Particle{Name: "Flame"}.Entry(0)
	assert.Equal(t, "part", part.Item.ID)
}

func TestGameValue(t *testing.T) {
	entry := GameValue{Name: "Player Count"}.Entry(0)
	assert.Equal(t, "g_val", entry.Item.ID)
	assert.Equal(t, "Default", entry.Item.Data["target"], "empty target defaults")

	entry = GameValue{Name: "Location", Target: "Selection"}.Entry(0)
	assert.Equal(t, "Selection", entry.Item.Data["target"])
}

func TestVector(t *testing.T) {
	entry := Vector{X: 1, Y: -2, Z: 0.5}.Entry(2)
	assert.Equal(t, "vec", entry.Item.ID)
	assert.Equal(t, map[string]any{"x": float64(1), "y": float64(-2), "z": 0.5}, entry.Item.Data)
	assert.Equal(t, 2, entry.Slot)
}
