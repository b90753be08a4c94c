package hcltmpl

import "github.com/hashicorp/hcl/v2"

// fileSchema matches the top level of a template file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "template", LabelNames: []string{"name"}},
	},
}

// templateSchema matches the body of a `template` block: one nested block
// per builder operation. Labels carry the action or name; everything else
// lives in the block body.
var templateSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "player_event", LabelNames: []string{"action"}},
		{Type: "entity_event", LabelNames: []string{"action"}},
		{Type: "function", LabelNames: []string{"name"}},
		{Type: "process", LabelNames: []string{"name"}},
		{Type: "call_function", LabelNames: []string{"name"}},
		{Type: "start_process", LabelNames: []string{"name"}},
		{Type: "player_action", LabelNames: []string{"action"}},
		{Type: "game_action", LabelNames: []string{"action"}},
		{Type: "entity_action", LabelNames: []string{"action"}},
		{Type: "if_player", LabelNames: []string{"action"}},
		{Type: "if_var", LabelNames: []string{"action"}},
		{Type: "if_game", LabelNames: []string{"action"}},
		{Type: "if_entity", LabelNames: []string{"action"}},
		{Type: "else"},
		{Type: "repeat", LabelNames: []string{"action"}},
		{Type: "close"},
		{Type: "control", LabelNames: []string{"action"}},
		{Type: "select_object", LabelNames: []string{"action"}},
		{Type: "set_var", LabelNames: []string{"action"}},
		{Type: "define", LabelNames: []string{"name"}},
		{Type: "bind", LabelNames: []string{"name"}},
		{Type: "return"},
	},
}

// Body schemas per block shape. Content() rejects attributes a block does
// not declare, so typos in template files surface as diagnostics.
var (
	emptyBodySchema = &hcl.BodySchema{}

	argsBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "args"}},
	}

	targetedBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "args"}, {Name: "target"}},
	}

	repeatBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "args"}, {Name: "sub_action"}},
	}

	defineBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "value"}, {Name: "scope"}},
	}

	bindBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "scope"}},
	}

	callBodySchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: "param", LabelNames: []string{"name"}}},
	}

	returnBodySchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: "result", LabelNames: []string{"name"}}},
	}

	valueBodySchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "value"}},
	}
)
