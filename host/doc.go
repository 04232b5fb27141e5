/*
Package host defines the narrow host adapter the evaluator calls into for
every file-system, icon and capability-probe effect (spec §6, "Host adapter
interface"). On Amiga, an implementation would use native calls; Posix
implements a POSIX fallback suitable for Linux/macOS/Windows, and Mem is an
in-memory double used by package eval/builtins tests.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package host

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'aminstall.host'.
func tracer() tracing.Trace {
	return tracing.Select("aminstall.host")
}
