package hcltmpl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/pyre"
)

// Compiled is one template block compiled into a ready-to-assemble builder.
type Compiled struct {
	// Name is the template block's label, used for reporting. The artifact
	// display name is derived separately during assembly.
	Name     string
	Source   string
	Template *pyre.Template
}

// Loader parses and compiles template files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser cache.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every given .hcl file and compiles all template blocks found,
// in file order then source order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Compiled, error) {
	logger := ctxlog.FromContext(ctx)
	var out []*Compiled

	for _, path := range paths {
		file, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", path, diags)
		}
		content, diags := file.Body.Content(fileSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("reading %s: %w", path, diags)
		}
		for _, block := range content.Blocks {
			compiled, err := compileTemplate(block)
			if err != nil {
				return nil, fmt.Errorf("template %q in %s: %w", block.Labels[0], path, err)
			}
			compiled.Source = path
			out = append(out, compiled)
			logger.Debug("template compiled", "name", compiled.Name, "path", path,
				"blocks", len(compiled.Template.Blocks()))
		}
	}
	return out, nil
}

// compileTemplate replays a template block's nested blocks, in source
// order, as builder calls.
func compileTemplate(block *hcl.Block) (*Compiled, error) {
	t := pyre.New()
	content, diags := block.Body.Content(templateSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	for _, step := range content.Blocks {
		if err := compileStep(t, step); err != nil {
			return nil, fmt.Errorf("%s: %w", step.DefRange, err)
		}
	}
	return &Compiled{Name: block.Labels[0], Template: t}, nil
}

func compileStep(t *pyre.Template, step *hcl.Block) error {
	switch step.Type {
	case "player_event", "entity_event", "function", "process", "start_process", "else", "close":
		if _, diags := step.Body.Content(emptyBodySchema); diags.HasErrors() {
			return diags
		}
	}

	switch step.Type {
	case "player_event":
		t.PlayerEvent(step.Labels[0])
	case "entity_event":
		t.EntityEvent(step.Labels[0])
	case "function":
		t.Function(step.Labels[0])
	case "process":
		t.Process(step.Labels[0])
	case "start_process":
		t.StartProcess(step.Labels[0])
	case "else":
		t.Else()
	case "close":
		t.CloseBracket()

	case "call_function":
		params, err := compileParams(step.Body, callBodySchema)
		if err != nil {
			return err
		}
		return t.CallFunction(step.Labels[0], params...)
	case "return":
		values, err := compileParams(step.Body, returnBodySchema)
		if err != nil {
			return err
		}
		return t.Return(values...)

	case "define":
		content, diags := step.Body.Content(defineBodySchema)
		if diags.HasErrors() {
			return diags
		}
		scope, err := evalScope(content.Attributes)
		if err != nil {
			return err
		}
		value := any(float64(0))
		if attr, ok := content.Attributes["value"]; ok {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return diags
			}
			if value, err = goValue(v); err != nil {
				return err
			}
		}
		return t.DefineScoped(step.Labels[0], scope, value)

	case "bind":
		content, diags := step.Body.Content(bindBodySchema)
		if diags.HasErrors() {
			return diags
		}
		scope, err := evalScope(content.Attributes)
		if err != nil {
			return err
		}
		t.Bind(step.Labels[0], scope)

	case "repeat":
		content, diags := step.Body.Content(repeatBodySchema)
		if diags.HasErrors() {
			return diags
		}
		args, err := evalArgs(content.Attributes)
		if err != nil {
			return err
		}
		subAction, err := evalString(content.Attributes, "sub_action", "")
		if err != nil {
			return err
		}
		if subAction != "" {
			return t.RepeatSub(step.Labels[0], subAction, args...)
		}
		return t.Repeat(step.Labels[0], args...)

	case "player_action", "if_player":
		content, diags := step.Body.Content(targetedBodySchema)
		if diags.HasErrors() {
			return diags
		}
		args, err := evalArgs(content.Attributes)
		if err != nil {
			return err
		}
		target, err := evalString(content.Attributes, "target", pyre.TargetDefault)
		if err != nil {
			return err
		}
		if step.Type == "player_action" {
			return t.PlayerActionFor(target, step.Labels[0], args...)
		}
		return t.IfPlayerFor(target, step.Labels[0], args...)

	default:
		content, diags := step.Body.Content(argsBodySchema)
		if diags.HasErrors() {
			return diags
		}
		args, err := evalArgs(content.Attributes)
		if err != nil {
			return err
		}
		switch step.Type {
		case "game_action":
			return t.GameAction(step.Labels[0], args...)
		case "entity_action":
			return t.EntityAction(step.Labels[0], args...)
		case "if_var":
			return t.IfVariable(step.Labels[0], args...)
		case "if_game":
			return t.IfGame(step.Labels[0], args...)
		case "if_entity":
			return t.IfEntity(step.Labels[0], args...)
		case "control":
			return t.Control(step.Labels[0], args...)
		case "select_object":
			return t.SelectObject(step.Labels[0], args...)
		case "set_var":
			return t.SetVariable(step.Labels[0], args...)
		}
	}
	return nil
}

// compileParams reads ordered param/result blocks into builder params.
func compileParams(body hcl.Body, schema *hcl.BodySchema) ([]pyre.Param, error) {
	content, diags := body.Content(schema)
	if diags.HasErrors() {
		return nil, diags
	}
	var params []pyre.Param
	for _, block := range content.Blocks {
		inner, diags := block.Body.Content(valueBodySchema)
		if diags.HasErrors() {
			return nil, diags
		}
		attr, ok := inner.Attributes["value"]
		if !ok {
			return nil, fmt.Errorf("%s: missing value attribute", block.DefRange)
		}
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		value, err := goValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		params = append(params, pyre.Param{Name: block.Labels[0], Value: value})
	}
	return params, nil
}
