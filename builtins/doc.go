// Package builtins implements the operator families of spec §4.4: the
// fn(ctx) -> node callbacks a Native node dispatches through. There is no
// parser in this module (spec §1's scope is the evaluator and its
// operators, not Installer's own grammar), so New is the construction
// entry point a script builder uses in place of parsing source text.
package builtins

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("aminstall.builtins")
}
