package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
)

// Terminal is a Dialog backed by pterm (colored output, boxes, progress
// bars) and readline (line-edited input), the same pairing the teacher's
// trepl.REPL used for its own interactive front end. There are no button
// widgets on a plain terminal, so every prompt accepts two pseudo-answers
// typed in place of a value: "/abort" (Answer Abort) and "/back" (Answer
// Back, spec §4.4's screen-navigation relaxation for this port).
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a readline-backed Terminal dialog. prompt is the line
// prefix shown before every input (e.g. "installer> ").
func NewTerminal(prompt string) (*Terminal, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	pterm.Info.Prefix = pterm.Prefix{Text: " INFO ", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " ERROR ", Style: pterm.NewStyle(pterm.BgRed, pterm.FgWhite)}
	pterm.Warning.Prefix = pterm.Prefix{Text: " WARN ", Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)}
	return &Terminal{rl: rl}, nil
}

// Close releases the underlying readline instance.
func (t *Terminal) Close() error { return t.rl.Close() }

func (t *Terminal) readLine() (string, bool) {
	line, err := t.rl.Readline()
	if err != nil { // io.EOF or interrupt: treat as abort
		return "", false
	}
	return strings.TrimSpace(line), true
}

func pseudoAnswer(line string) (Answer, bool) {
	switch strings.ToLower(line) {
	case "/abort":
		return Abort, true
	case "/back":
		return Back, true
	}
	return Proceed, false
}

func (t *Terminal) showPrompt(prompt, help string) {
	if help != "" {
		pterm.DefaultBox.WithTitle(prompt).Println(help)
	} else {
		pterm.Info.Println(prompt)
	}
}

func (t *Terminal) Bool(prompt, help string, def bool) (bool, Answer) {
	t.showPrompt(prompt, help)
	defStr := "y"
	if !def {
		defStr = "n"
	}
	pterm.Printf("[y/n, default %s]: ", defStr)
	for {
		line, ok := t.readLine()
		if !ok {
			return def, Abort
		}
		if ans, is := pseudoAnswer(line); is {
			return def, ans
		}
		switch strings.ToLower(line) {
		case "":
			return def, Proceed
		case "y", "yes":
			return true, Proceed
		case "n", "no":
			return false, Proceed
		default:
			pterm.Warning.Println("please answer y or n")
		}
	}
}

func (t *Terminal) Choice(prompt, help string, options []string, def int) (int, Answer) {
	t.showPrompt(prompt, help)
	for i, opt := range options {
		marker := " "
		if i == def {
			marker = "*"
		}
		pterm.Printf("  %s %d) %s\n", marker, i+1, opt)
	}
	for {
		line, ok := t.readLine()
		if !ok {
			return def, Abort
		}
		if ans, is := pseudoAnswer(line); is {
			return def, ans
		}
		if line == "" {
			return def, Proceed
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			pterm.Warning.Printf("enter a number between 1 and %d\n", len(options))
			continue
		}
		return n - 1, Proceed
	}
}

func (t *Terminal) Options(prompt, help string, options []string, initial []bool) ([]bool, Answer) {
	t.showPrompt(prompt, help)
	sel := append([]bool(nil), initial...)
	for i, opt := range options {
		box := "[ ]"
		if i < len(sel) && sel[i] {
			box = "[x]"
		}
		pterm.Printf("  %s %d) %s\n", box, i+1, opt)
	}
	pterm.Println("toggle indices separated by spaces, blank line to accept:")
	for {
		line, ok := t.readLine()
		if !ok {
			return sel, Abort
		}
		if ans, is := pseudoAnswer(line); is {
			return sel, ans
		}
		if line == "" {
			return sel, Proceed
		}
		for _, tok := range strings.Fields(line) {
			n, err := strconv.Atoi(tok)
			if err != nil || n < 1 || n > len(options) {
				continue
			}
			sel[n-1] = !sel[n-1]
		}
		for i, opt := range options {
			box := "[ ]"
			if sel[i] {
				box = "[x]"
			}
			pterm.Printf("  %s %d) %s\n", box, i+1, opt)
		}
	}
}

func (t *Terminal) Number(prompt, help string, lo, hi, def int) (int, Answer) {
	t.showPrompt(prompt, help)
	pterm.Printf("[%d-%d, default %d]: ", lo, hi, def)
	for {
		line, ok := t.readLine()
		if !ok {
			return def, Abort
		}
		if ans, is := pseudoAnswer(line); is {
			return def, ans
		}
		if line == "" {
			return def, Proceed
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < lo || n > hi {
			pterm.Warning.Printf("enter a number between %d and %d\n", lo, hi)
			continue
		}
		return n, Proceed
	}
}

func (t *Terminal) String(prompt, help string, def string) (string, Answer) {
	t.showPrompt(prompt, help)
	if def != "" {
		pterm.Printf("[default %q]: ", def)
	}
	line, ok := t.readLine()
	if !ok {
		return def, Abort
	}
	if ans, is := pseudoAnswer(line); is {
		return def, ans
	}
	if line == "" {
		return def, Proceed
	}
	return line, Proceed
}

func (t *Terminal) AskFile(prompt, dir, pattern string, mustExist bool) (string, Answer) {
	help := fmt.Sprintf("looking in %s", dir)
	if pattern != "" {
		help += fmt.Sprintf(" matching %s", pattern)
	}
	return t.String(prompt, help, dir)
}

func (t *Terminal) AskDir(prompt, dir string, newPath bool) (string, Answer) {
	help := "choose an existing directory"
	if newPath {
		help = "a new directory will be created if it does not exist"
	}
	return t.String(prompt, help, dir)
}

func (t *Terminal) Message(text string) {
	pterm.Info.Println(text)
}

func (t *Terminal) Welcome(appName, appVersion string) {
	title := appName
	if appVersion != "" {
		title = fmt.Sprintf("%s %s", appName, appVersion)
	}
	pterm.DefaultBox.WithTitle("Installer").Println(fmt.Sprintf("Welcome to %s", title))
}

func (t *Terminal) Working(text string) {
	pterm.Info.Println(text)
}

func (t *Terminal) Complete(ok bool, text string) {
	if ok {
		pterm.Success.Println(text)
		return
	}
	pterm.Error.Println(text)
}

func (t *Terminal) CopyBegin(entries []CopyEntry) {
	pterm.Info.Printfln("copying %d file(s)", len(entries))
}

func (t *Terminal) CopySetCur(i int, entry CopyEntry, copied, total int64) {
	pct := 100
	if total > 0 {
		pct = int(copied * 100 / total)
	}
	pterm.Printf("\r  [%d/%*d%%] %s -> %s", i+1, 3, pct, entry.Src, entry.Dst)
	if copied >= total {
		pterm.Println()
	}
}

func (t *Terminal) CopyEnd() {
	pterm.Success.Println("copy complete")
}

var _ Dialog = (*Terminal)(nil)
