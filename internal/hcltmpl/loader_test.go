package hcltmpl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ampersand-S/dfpy/pyre"
	"github.com/Ampersand-S/dfpy/pyre/item"
)

func writeTemplate(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.hcl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0600))
	return path
}

func load(t *testing.T, source string) []*Compiled {
	t.Helper()
	compiled, err := NewLoader().Load(context.Background(), writeTemplate(t, source))
	require.NoError(t, err)
	return compiled
}

func TestLoad_MatchesImperativeEquivalent(t *testing.T) {
	compiled := load(t, `
template "greet" {
  player_event "Join" {}
  player_action "SendMessage" {
    args = ["Welcome!", 5]
  }
  if_player "IsSneaking" {}
  player_action "SendMessage" {
    args   = ["caught"]
    target = "Selection"
  }
  close {}
}
`)
	require.Len(t, compiled, 1)
	assert.Equal(t, "greet", compiled[0].Name)

	want := pyre.New()
	want.PlayerEvent("Join")
	require.NoError(t, want.PlayerAction("SendMessage", "Welcome!", float64(5)))
	require.NoError(t, want.IfPlayer("IsSneaking"))
	require.NoError(t, want.PlayerActionFor("Selection", "SendMessage", "caught"))
	want.CloseBracket()

	if diff := cmp.Diff(want.Blocks(), compiled[0].Template.Blocks()); diff != "" {
		t.Errorf("compiled blocks differ (-want +got):\n%s", diff)
	}
}

func TestLoad_DefineAndBackReference(t *testing.T) {
	compiled := load(t, `
template "counter" {
  player_event "Join" {}
  define "count" {
    value = 10
    scope = "saved"
  }
  set_var "+" {
    args = ["^count", 1]
  }
}
`)
	blocks := compiled[0].Template.Blocks()
	require.Len(t, blocks, 3)

	define := blocks[1]
	assert.Equal(t, pyre.CatSetVariable, define.Category)
	assert.Equal(t, item.ScopedVar("count", item.ScopeSaved), define.Args[0])
	assert.Equal(t, item.Num(10), define.Args[1])

	incr := blocks[2]
	assert.Equal(t, item.ScopedVar("count", item.ScopeSaved), incr.Args[0])
}

func TestLoad_BindWithoutInitializer(t *testing.T) {
	compiled := load(t, `
template "add" {
  function "add" {}
  bind "num1" {
    scope = "local"
  }
  set_var "=" {
    args = ["^num1", 1]
  }
}
`)
	blocks := compiled[0].Template.Blocks()
	require.Len(t, blocks, 2, "bind emits no block")
	assert.Equal(t, item.ScopedVar("num1", item.ScopeLocal), blocks[1].Args[0])
}

func TestLoad_CallFunctionParamsInOrder(t *testing.T) {
	compiled := load(t, `
template "caller" {
  player_event "Join" {}
  call_function "add" {
    param "num1" {
      value = 5
    }
    param "num2" {
      value = 37
    }
  }
}
`)
	blocks := compiled[0].Template.Blocks()
	require.Len(t, blocks, 4)
	assert.Equal(t, item.ScopedVar("num1", item.ScopeLocal), blocks[1].Args[0])
	assert.Equal(t, item.ScopedVar("num2", item.ScopeLocal), blocks[2].Args[0])
	assert.Equal(t, "add", blocks[3].Data)
}

func TestLoad_RepeatSubAction(t *testing.T) {
	compiled := load(t, `
template "loop" {
  process "ticker" {}
  repeat "While" {
    sub_action = "IsSneaking"
  }
  control "Wait" {
    args = [20]
  }
  close {}
}
`)
	blocks := compiled[0].Template.Blocks()
	require.Len(t, blocks, 5)
	assert.Equal(t, "While", blocks[1].Action)
	assert.Equal(t, "IsSneaking", blocks[1].SubAction)
	assert.Equal(t, pyre.BracketRepeating, blocks[4].Flavor)
}

func TestLoad_MultipleTemplatesInOrder(t *testing.T) {
	compiled := load(t, `
template "first" {
  player_event "Join" {}
}
template "second" {
  player_event "Leave" {}
}
`)
	require.Len(t, compiled, 2)
	assert.Equal(t, "first", compiled[0].Name)
	assert.Equal(t, "second", compiled[1].Name)
}

func TestLoad_Errors(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	t.Run("syntax error", func(t *testing.T) {
		_, err := loader.Load(ctx, writeTemplate(t, `template "broken" {`))
		assert.Error(t, err)
	})

	t.Run("unknown block type", func(t *testing.T) {
		_, err := loader.Load(ctx, writeTemplate(t, `
template "t" {
  teleport_everyone "Now" {}
}
`))
		assert.Error(t, err)
	})

	t.Run("undefined back-reference", func(t *testing.T) {
		_, err := loader.Load(ctx, writeTemplate(t, `
template "t" {
  player_event "Join" {}
  set_var "=" {
    args = ["^ghost", 1]
  }
}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("invalid scope", func(t *testing.T) {
		_, err := loader.Load(ctx, writeTemplate(t, `
template "t" {
  define "x" {
    scope = "galactic"
  }
}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scope")
	})

	t.Run("args must be a list", func(t *testing.T) {
		_, err := loader.Load(ctx, writeTemplate(t, `
template "t" {
  player_event "Join" {}
  player_action "SendMessage" {
    args = "not a list"
  }
}
`))
		assert.Error(t, err)
	})
}
