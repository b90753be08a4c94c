// Package hcltmpl compiles declarative .hcl template files into pyre
// templates. Each file holds one or more `template` blocks whose nested
// blocks map one-to-one onto builder operations, in source order:
//
//	template "greet" {
//	  player_event "Join" {}
//	  player_action "SendMessage" {
//	    args = ["Welcome!"]
//	  }
//	  if_player "IsSneaking" {}
//	  player_action "SendMessage" {
//	    args   = ["No sneaking in the lobby."]
//	    target = "Selection"
//	  }
//	  close {}
//	}
//
// Arguments are literal strings and numbers; a string starting with "^"
// is a back-reference to a variable introduced by an earlier `define`
// block, exactly as in the Go API.
package hcltmpl
