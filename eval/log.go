package eval

import (
	"fmt"
	"os"

	"github.com/amiga-tools/aminstall"
)

// Log implements spec §6's "Persisted state": append-only lines at
// @log-file formatted "[<line>:<op>] <message>", written only if @log is
// enabled. The log file is outside host.Host's narrow file/icon/probe
// surface (spec §6 lists it under "Persisted state", not the Host
// adapter interface), so this opens it directly with the stdlib rather
// than adding a one-off method to Host for a single caller — justified
// stdlib use (os.OpenFile with O_APPEND), matching spec §5's "log file
// handle (opened/closed per write)".
func (ev *Evaluator) Log(line aminstall.Pos, op string, format string, args ...interface{}) {
	enabled, _ := ev.env.Reserved().GetNum("log")
	if enabled == 0 {
		return
	}
	f, err := os.OpenFile(ev.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		tracer().Errorf("cannot open log file %s: %v", ev.logPath, err)
		return
	}
	defer f.Close()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(f, "[%s:%s] %s\n", line, op, msg)
}
