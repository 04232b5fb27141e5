/*
Package dialog defines the user-facing prompt backend the evaluator calls
into for every interactive operator (spec §4.4 "Prompts": askbool, askdisk,
askdir, askfile, asknumber, askoptions, askstring, askchoice; and the
before/copyfiles/lastmessage progress reports of spec §4.4 "File & icon
operations"). Terminal implements it with pterm for colored output and
readline for line-edited input; Scripted is a canned-answer test double.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package dialog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'aminstall.dialog'.
func tracer() tracing.Trace {
	return tracing.Select("aminstall.dialog")
}
