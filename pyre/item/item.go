// Package item defines the typed argument values that can be placed in a
// codeblock's chest, and how each of them renders into the slot-indexed
// wire representation DiamondFire expects.
package item

import (
	"fmt"
	"strconv"
)

// Scope identifies the lifetime of a variable on the plot.
type Scope string

const (
	// ScopeUnsaved variables reset when the plot restarts ("GAME").
	ScopeUnsaved Scope = "unsaved"
	// ScopeSaved variables persist across plot restarts ("SAVE").
	ScopeSaved Scope = "saved"
	// ScopeLocal variables are visible only to the executing thread.
	ScopeLocal Scope = "local"
	// ScopeLine variables are visible only to the current code line.
	ScopeLine Scope = "line"
)

// WireEntry is one slot of a codeblock chest as it appears on the wire.
type WireEntry struct {
	Item WireItem `json:"item"`
	Slot int      `json:"slot"`
}

// WireItem is the typed payload inside a WireEntry. Data is kept generic
// because tag entries loaded from the reference table share this shape.
type WireItem struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Value is a typed codeblock argument. The set of implementations is closed:
// every variant lives in this package.
type Value interface {
	// Entry renders the value into the given chest slot.
	Entry(slot int) WireEntry

	sealed()
}

func entry(id string, data map[string]any, slot int) WireEntry {
	return WireEntry{Item: WireItem{ID: id, Data: data}, Slot: slot}
}

// formatNumber matches the in-game rendering of numbers: no exponent, no
// trailing zeros, integers without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Text is a plain text argument.
type Text struct {
	Value string
}

func (t Text) Entry(slot int) WireEntry {
	return entry("txt", map[string]any{"name": t.Value}, slot)
}

// Number is a numeric argument. DiamondFire stores numbers as strings.
type Number struct {
	Value float64
}

// Num is a convenience constructor so untyped numeric constants convert
// implicitly: item.Num(5).
func Num(v float64) Number {
	return Number{Value: v}
}

func (n Number) Entry(slot int) WireEntry {
	return entry("num", map[string]any{"name": formatNumber(n.Value)}, slot)
}

// Variable is a reference to a plot variable.
type Variable struct {
	Name  string
	Scope Scope
}

// Var returns an unsaved-scope variable reference.
func Var(name string) Variable {
	return Variable{Name: name, Scope: ScopeUnsaved}
}

// ScopedVar returns a variable reference with an explicit scope.
func ScopedVar(name string, scope Scope) Variable {
	return Variable{Name: name, Scope: scope}
}

func (v Variable) Entry(slot int) WireEntry {
	return entry("var", map[string]any{"name": v.Name, "scope": string(v.Scope)}, slot)
}

// Location is a position on the plot, with optional rotation.
type Location struct {
	X, Y, Z    float64
	Pitch, Yaw float64
}

func (l Location) Entry(slot int) WireEntry {
	return entry("loc", map[string]any{
		"isBlock": false,
		"loc": map[string]any{
			"x":     l.X,
			"y":     l.Y,
			"z":     l.Z,
			"pitch": l.Pitch,
			"yaw":   l.Yaw,
		},
	}, slot)
}

// Stack is a Minecraft item stack, identified by its namespaced item id.
type Stack struct {
	ID    string
	Count int
}

func (s Stack) Entry(slot int) WireEntry {
	count := s.Count
	if count < 1 {
		count = 1
	}
	snbt := fmt.Sprintf("{Count:%db,id:%q}", count, s.ID)
	return entry("item", map[string]any{"item": snbt}, slot)
}

// Sound is a named sound with pitch and volume.
type Sound struct {
	Name   string
	Pitch  float64
	Volume float64
}

func (s Sound) Entry(slot int) WireEntry {
	return entry("snd", map[string]any{
		"sound": s.Name,
		"pitch": s.Pitch,
		"vol":   s.Volume,
	}, slot)
}

// Particle is a named particle effect.
type Particle struct {
	Name string
}

func (p Particle) Entry(slot int) WireEntry {
	return entry("part", map[string]any{"particle": p.Name}, slot)
}

// Potion is a potion effect with duration in ticks and an amplifier.
type Potion struct {
	Name      string
	Duration  int
	Amplifier int
}

func (p Potion) Entry(slot int) WireEntry {
	return entry("pot", map[string]any{
		"pot": p.Name,
		"dur": float64(p.Duration),
		"amp": float64(p.Amplifier),
	}, slot)
}

// GameValue reads a live value from the game, optionally from a target.
type GameValue struct {
	Name   string
	Target string
}

func (g GameValue) Entry(slot int) WireEntry {
	target := g.Target
	if target == "" {
		target = "Default"
	}
	return entry("g_val", map[string]any{"type": g.Name, "target": target}, slot)
}

// Vector is a three-component vector.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) Entry(slot int) WireEntry {
	return entry("vec", map[string]any{"x": v.X, "y": v.Y, "z": v.Z}, slot)
}

func (Text) sealed()      {}
func (Number) sealed()    {}
func (Variable) sealed()  {}
func (Location) sealed()  {}
func (Stack) sealed()     {}
func (Sound) sealed()     {}
func (Particle) sealed()  {}
func (Potion) sealed()    {}
func (GameValue) sealed() {}
func (Vector) sealed()    {}
