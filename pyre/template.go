package pyre

import (
	"fmt"
	"strings"

	"github.com/Ampersand-S/dfpy/pyre/item"
)

// RefSigil marks a string argument as a back-reference to a variable bound
// earlier with Define or Bind: "^counter" resolves to the binding named
// "counter".
const RefSigil = "^"

// Template is an in-progress block sequence. It owns the block list, the
// named variable bindings, and the stack of open bracket flavors. A
// Template is not safe for concurrent use; each instance is independent.
type Template struct {
	blocks   []Block
	defined  map[string]item.Variable
	brackets []BracketFlavor
}

// New returns an empty template.
func New() *Template {
	return &Template{defined: make(map[string]item.Variable)}
}

// Blocks returns the appended blocks in order. The returned slice is shared
// with the template and must not be modified.
func (t *Template) Blocks() []Block {
	return t.blocks
}

// Clear resets the template to its freshly constructed state, dropping all
// blocks, bindings, and open brackets.
func (t *Template) Clear() {
	t.blocks = nil
	t.brackets = nil
	t.defined = make(map[string]item.Variable)
}

// Param is an ordered name/value pair for CallFunction parameters and
// Return values. A slice of Param preserves call-site order, which a Go map
// would not.
type Param struct {
	Name  string
	Value any
}

// UnknownReferenceError reports a back-reference argument that names a
// variable never bound with Define or Bind.
type UnknownReferenceError struct {
	Name string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown variable reference %q: no prior Define or Bind", e.Name)
}

// convertArgs normalizes caller-supplied raw arguments into typed values.
// Conversion is by explicit type inspection: numerics become numbers,
// sigil-prefixed strings resolve against the template's bindings, other
// strings become text, and already-typed values pass through.
func (t *Template) convertArgs(raw []any) ([]item.Value, error) {
	out := make([]item.Value, 0, len(raw))
	for i, arg := range raw {
		switch v := arg.(type) {
		case int:
			out = append(out, item.Num(float64(v)))
		case int64:
			out = append(out, item.Num(float64(v)))
		case float64:
			out = append(out, item.Num(v))
		case string:
			if strings.HasPrefix(v, RefSigil) {
				name := strings.TrimPrefix(v, RefSigil)
				bound, ok := t.defined[name]
				if !ok {
					return nil, &UnknownReferenceError{Name: name}
				}
				out = append(out, bound)
				continue
			}
			out = append(out, item.Text{Value: v})
		case item.Value:
			out = append(out, v)
		default:
			return nil, fmt.Errorf("argument %d: unsupported type %T", i, arg)
		}
	}
	return out, nil
}

func (t *Template) append(b Block) {
	t.blocks = append(t.blocks, b)
}

// openBracket appends the opening bracket block and pushes its flavor so
// the matching CloseBracket closes with the same one.
func (t *Template) openBracket(flavor BracketFlavor) {
	t.append(Block{Kind: KindBracket, Direct: "open", Flavor: flavor})
	t.brackets = append(t.brackets, flavor)
}

// appendAction converts args and appends a regular codeblock.
func (t *Template) appendAction(cat Category, action, target string, raw []any) error {
	args, err := t.convertArgs(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", cat, action, err)
	}
	t.append(Block{Kind: KindBlock, Category: cat, Action: action, Target: target, Args: args})
	return nil
}

// PlayerEvent starts the template with a player event such as "Join".
func (t *Template) PlayerEvent(name string) {
	t.append(Block{Kind: KindBlock, Category: CatEvent, Action: name, Target: TargetDefault})
}

// EntityEvent starts the template with an entity event.
func (t *Template) EntityEvent(name string) {
	t.append(Block{Kind: KindBlock, Category: CatEntityEvent, Action: name, Target: TargetDefault})
}

// Function starts a function template with the given name.
func (t *Template) Function(name string) {
	t.append(Block{Kind: KindBlock, Category: CatFunction, Data: name, Target: TargetDefault})
}

// Process starts a process template with the given name.
func (t *Template) Process(name string) {
	t.append(Block{Kind: KindBlock, Category: CatProcess, Data: name, Target: TargetDefault})
}

// CallFunction appends a call to a named function. Each parameter is first
// rewritten into a local-scope set-variable block, in the given order, so
// the callee reads its parameters as ordinary local variables.
func (t *Template) CallFunction(name string, params ...Param) error {
	for _, p := range params {
		if err := t.SetVariable("=", item.ScopedVar(p.Name, item.ScopeLocal), p.Value); err != nil {
			return fmt.Errorf("call %q parameter %q: %w", name, p.Name, err)
		}
	}
	t.append(Block{Kind: KindBlock, Category: CatCallFunction, Data: name, Target: TargetDefault})
	return nil
}

// StartProcess appends a block that starts a named process.
func (t *Template) StartProcess(name string) {
	t.append(Block{Kind: KindBlock, Category: CatStartProcess, Data: name, Target: TargetDefault})
}

// PlayerAction appends a player action targeting the default selection.
func (t *Template) PlayerAction(name string, args ...any) error {
	return t.appendAction(CatPlayerAction, name, TargetDefault, args)
}

// PlayerActionFor appends a player action with an explicit target selector.
func (t *Template) PlayerActionFor(target, name string, args ...any) error {
	return t.appendAction(CatPlayerAction, name, target, args)
}

// GameAction appends a game action.
func (t *Template) GameAction(name string, args ...any) error {
	return t.appendAction(CatGameAction, name, TargetDefault, args)
}

// EntityAction appends an entity action.
func (t *Template) EntityAction(name string, args ...any) error {
	return t.appendAction(CatEntityAction, name, TargetDefault, args)
}

// IfPlayer appends a player conditional and opens its bracket.
func (t *Template) IfPlayer(name string, args ...any) error {
	return t.openConditional(CatIfPlayer, name, TargetDefault, args)
}

// IfPlayerFor appends a player conditional with an explicit target selector
// and opens its bracket.
func (t *Template) IfPlayerFor(target, name string, args ...any) error {
	return t.openConditional(CatIfPlayer, name, target, args)
}

// IfVariable appends a variable conditional and opens its bracket.
func (t *Template) IfVariable(name string, args ...any) error {
	return t.openConditional(CatIfVariable, name, TargetDefault, args)
}

// IfGame appends a game conditional and opens its bracket.
func (t *Template) IfGame(name string, args ...any) error {
	return t.openConditional(CatIfGame, name, TargetDefault, args)
}

// IfEntity appends an entity conditional and opens its bracket.
func (t *Template) IfEntity(name string, args ...any) error {
	return t.openConditional(CatIfEntity, name, TargetDefault, args)
}

func (t *Template) openConditional(cat Category, action, target string, raw []any) error {
	if err := t.appendAction(cat, action, target, raw); err != nil {
		return err
	}
	t.openBracket(BracketNormal)
	return nil
}

// Else appends an else block and opens its bracket, mirroring the
// conditional it follows.
func (t *Template) Else() {
	t.append(Block{Kind: KindBlock, Category: CatElse, Target: TargetDefault})
	t.openBracket(BracketNormal)
}

// Repeat appends a repeat block and opens its sticky bracket.
func (t *Template) Repeat(name string, args ...any) error {
	return t.repeat(name, "", args)
}

// RepeatSub is Repeat with a sub-action, used by repeat modes such as
// "While" that wrap a conditional action.
func (t *Template) RepeatSub(name, subAction string, args ...any) error {
	return t.repeat(name, subAction, args)
}

func (t *Template) repeat(name, subAction string, raw []any) error {
	args, err := t.convertArgs(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", CatRepeat, name, err)
	}
	t.append(Block{
		Kind:      KindBlock,
		Category:  CatRepeat,
		Action:    name,
		SubAction: subAction,
		Target:    TargetDefault,
		Args:      args,
	})
	t.openBracket(BracketRepeating)
	return nil
}

// CloseBracket appends the closing bracket for the most recently opened
// conditional or loop, using that opener's flavor. Closing with no open
// bracket appends a normal close; the builder stays permissive and leaves
// balance checking to the caller.
func (t *Template) CloseBracket() {
	flavor := BracketNormal
	if n := len(t.brackets); n > 0 {
		flavor = t.brackets[n-1]
		t.brackets = t.brackets[:n-1]
	}
	t.append(Block{Kind: KindBracket, Direct: "close", Flavor: flavor})
}

// Control appends a control block such as "Wait" or "Return".
func (t *Template) Control(name string, args ...any) error {
	return t.appendAction(CatControl, name, TargetDefault, args)
}

// SelectObject appends a selection block.
func (t *Template) SelectObject(name string, args ...any) error {
	return t.appendAction(CatSelectObject, name, TargetDefault, args)
}

// SetVariable appends a set-variable block.
func (t *Template) SetVariable(action string, args ...any) error {
	return t.appendAction(CatSetVariable, action, TargetDefault, args)
}

// Return assigns each named value to a local variable, in order, then
// appends a control Return block.
func (t *Template) Return(values ...Param) error {
	for _, p := range values {
		if err := t.SetVariable("=", item.ScopedVar(p.Name, item.ScopeLocal), p.Value); err != nil {
			return fmt.Errorf("return value %q: %w", p.Name, err)
		}
	}
	return t.Control("Return")
}

// Define binds name to an unsaved-scope variable, emits a set-variable
// block initializing it to value, and makes "^name" arguments resolve to
// the binding from here on.
func (t *Template) Define(name string, value any) error {
	return t.DefineScoped(name, item.ScopeUnsaved, value)
}

// DefineScoped is Define with an explicit variable scope.
func (t *Template) DefineScoped(name string, scope item.Scope, value any) error {
	v := item.ScopedVar(name, scope)
	if err := t.SetVariable("=", v, value); err != nil {
		return fmt.Errorf("define %q: %w", name, err)
	}
	t.defined[name] = v
	return nil
}

// Bind binds name to a variable reference without emitting an initializer
// block. It returns the binding for direct use as an argument.
func (t *Template) Bind(name string, scope item.Scope) item.Variable {
	v := item.ScopedVar(name, scope)
	t.defined[name] = v
	return v
}
