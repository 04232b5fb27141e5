package dialog

// Answer is the outcome of a prompt that offers more than "the value the
// user typed": most Installer prompts additionally let the user abort the
// whole run or (per spec §4.4's "back" Non-goal relaxation for this port)
// back up to the previous prompt.
type Answer int

const (
	Proceed Answer = iota
	Skip
	Abort
	Back
)

// CopyEntry names one file transfer for CopyBegin/CopySetCur.
type CopyEntry struct {
	Src, Dst string
}

// Dialog is the user-interaction backend of spec §6. Every prompt returns
// an Answer alongside its value so callers can distinguish "user answered"
// from "user aborted"; Bool/Choice/Options/Number/String all honor a
// default so (confirm ...) scripts run unattended can fall through safely.
type Dialog interface {
	// Bool asks a yes/no question with optional rich help text.
	Bool(prompt, help string, def bool) (bool, Answer)

	// Choice asks the user to pick exactly one of options, with labels
	// shown verbatim and def the zero-based default index.
	Choice(prompt, help string, options []string, def int) (int, Answer)

	// Options asks the user to pick any subset of options; initial marks
	// which indices start checked.
	Options(prompt, help string, options []string, initial []bool) ([]bool, Answer)

	// Number asks for an integer within [lo, hi].
	Number(prompt, help string, lo, hi, def int) (int, Answer)

	// String asks for a line of free text.
	String(prompt, help string, def string) (string, Answer)

	// AskFile asks the user to pick an existing file below dir, offering
	// pattern (may be "") as a filter hint.
	AskFile(prompt, dir, pattern string, mustExist bool) (string, Answer)

	// AskDir asks the user to pick a directory, offering dir as the
	// suggested default; newPath allows naming a directory that does not
	// yet exist.
	AskDir(prompt, dir string, newPath bool) (string, Answer)

	// Message shows an informational message the user must acknowledge.
	Message(text string)

	// Welcome shows the installer's introductory banner.
	Welcome(appName, appVersion string)

	// Working reports free-form progress text (e.g. "Scanning...").
	Working(text string)

	// Complete shows the final success/failure banner.
	Complete(ok bool, text string)

	// CopyBegin announces a batch of file copies about to run.
	CopyBegin(entries []CopyEntry)
	// CopySetCur reports progress for the file at index i of the batch
	// started by the most recent CopyBegin; copied/total are byte counts.
	CopySetCur(i int, entry CopyEntry, copied, total int64)
	// CopyEnd closes out the batch started by the most recent CopyBegin.
	CopyEnd()
}
