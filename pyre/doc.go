// Package pyre builds DiamondFire code templates imperatively. A Template
// is an ordered, append-only sequence of codeblocks: events, actions,
// conditionals with piston brackets, loops, and variable operations.
// Assemble resolves the finished sequence into its wire-form Document,
// consulting a tagdata.Store for the fixed tag items each block carries.
//
// The companion packages handle the rest of the pipeline: pyre/item defines
// the typed argument values, pyre/codec turns a Document into the
// compressed base64 transport string, and pyre/recode delivers that string
// to a locally running client.
package pyre
