package pyre

import (
	"context"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/pyre/item"
	"github.com/Ampersand-S/dfpy/pyre/tagdata"
)

// chestCapacity is the number of slots in a codeblock chest. Arguments plus
// tags can never exceed it; tags win when they collide.
const chestCapacity = 27

// Document is the assembled template in its wire shape, ready for encoding.
// Name is the derived display name and is not part of the serialized form.
type Document struct {
	Blocks []WireBlock `json:"blocks"`
	Name   string      `json:"-"`
}

// WireBlock is one serialized block. Field presence varies by kind:
// brackets carry Direct and Type, ordinary blocks carry Block plus whichever
// of Action, SubAction, Data, and Target apply.
type WireBlock struct {
	ID        string   `json:"id"`
	Block     string   `json:"block,omitempty"`
	Args      WireArgs `json:"args"`
	Action    string   `json:"action,omitempty"`
	SubAction string   `json:"subAction,omitempty"`
	Target    string   `json:"target,omitempty"`
	Data      string   `json:"data,omitempty"`
	Direct    string   `json:"direct,omitempty"`
	Type      string   `json:"type,omitempty"`
}

// WireArgs is the chest contents of a block.
type WireArgs struct {
	Items []item.WireEntry `json:"items"`
}

// templateStarters are the categories a template may open with.
var templateStarters = map[Category]bool{
	CatEvent:       true,
	CatEntityEvent: true,
	CatFunction:    true,
	CatProcess:     true,
}

// Assemble walks the finished block sequence and resolves every block into
// its wire form, attaching schema-derived tags from store. It is a
// non-destructive read: the template can keep growing afterwards. A nil
// store is treated as an empty one.
func (t *Template) Assemble(ctx context.Context, store *tagdata.Store) *Document {
	doc := &Document{Blocks: make([]WireBlock, 0, len(t.blocks))}

	for _, b := range t.blocks {
		wire := WireBlock{ID: string(b.Kind), Args: WireArgs{Items: []item.WireEntry{}}}

		if b.Kind == KindBracket {
			wire.Direct = b.Direct
			wire.Type = string(b.Flavor)
			doc.Blocks = append(doc.Blocks, wire)
			continue
		}

		wire.Block = string(b.Category)
		wire.Action = b.Action
		wire.SubAction = b.SubAction
		wire.Data = b.Data
		if b.Category != CatEvent && b.Target != "" && b.Target != TargetDefault {
			wire.Target = b.Target
		}

		for slot, arg := range b.Args {
			wire.Args.Items = append(wire.Args.Items, arg.Entry(slot))
		}

		if tags, ok := store.Lookup(ctx, string(b.Category), b.Action); ok && len(tags) > 0 {
			items := wire.Args.Items
			// Tags are never dropped: arguments yield their slots instead.
			if len(items)+len(tags) > chestCapacity {
				items = items[:chestCapacity-1-len(tags)]
			}
			wire.Args.Items = append(items, tags...)
		}

		doc.Blocks = append(doc.Blocks, wire)
	}

	doc.Name = deriveName(ctx, doc)
	return doc
}

// deriveName produces the template display name from the first block:
// category and action joined, the block's bare data string for function and
// process starters, or "Unnamed" when the sequence is empty or does not
// open with a recognized starter.
func deriveName(ctx context.Context, doc *Document) string {
	logger := ctxlog.FromContext(ctx)

	if len(doc.Blocks) == 0 {
		logger.Warn("assembled an empty template")
		return "Unnamed"
	}
	first := doc.Blocks[0]
	if !templateStarters[Category(first.Block)] {
		logger.Warn("template does not start with an event, function, or process",
			"firstBlock", first.Block)
		return "Unnamed"
	}
	if first.Action != "" {
		return first.Block + "_" + first.Action
	}
	if first.Data != "" {
		return first.Data
	}
	return "Unnamed"
}
