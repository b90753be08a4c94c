package pyre

import "github.com/Ampersand-S/dfpy/pyre/item"

// Kind distinguishes ordinary codeblocks from the piston brackets that
// delimit conditional and loop bodies. The values are the wire "id" field.
type Kind string

const (
	KindBlock   Kind = "block"
	KindBracket Kind = "bracket"
)

// Category is the closed set of codeblock categories. The values are the
// wire "block" field.
type Category string

const (
	CatEvent        Category = "event"
	CatEntityEvent  Category = "entity_event"
	CatFunction     Category = "func"
	CatProcess      Category = "process"
	CatCallFunction Category = "call_func"
	CatStartProcess Category = "start_process"
	CatPlayerAction Category = "player_action"
	CatGameAction   Category = "game_action"
	CatEntityAction Category = "entity_action"
	CatIfPlayer     Category = "if_player"
	CatIfVariable   Category = "if_var"
	CatIfGame       Category = "if_game"
	CatIfEntity     Category = "if_entity"
	CatElse         Category = "else"
	CatRepeat       Category = "repeat"
	CatControl      Category = "control"
	CatSelectObject Category = "select_obj"
	CatSetVariable  Category = "set_var"
)

// BracketFlavor selects between the normal piston brackets of conditionals
// and the sticky-piston brackets of loops.
type BracketFlavor string

const (
	BracketNormal    BracketFlavor = "norm"
	BracketRepeating BracketFlavor = "repeat"
)

// TargetDefault is the sentinel target selector. Blocks carrying it omit
// the target from their wire form.
const TargetDefault = "Default"

// Block is one step of a template. A Block is immutable once appended to a
// Template: builder methods construct it fully before the append.
type Block struct {
	Kind     Kind
	Category Category // KindBlock only

	// Action is the action identifier within the category. Function,
	// process and call blocks carry their name in Data instead.
	Action    string
	SubAction string
	Data      string
	Target    string
	Args      []item.Value

	// Bracket fields, KindBracket only.
	Direct string // "open" or "close"
	Flavor BracketFlavor
}
