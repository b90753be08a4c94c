// Package app wires the pipeline together: it configures logging, loads the
// codeblock tag table, compiles template files, and runs each compiled
// template through assembly, encoding, and optional delivery.
package app
