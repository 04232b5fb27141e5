// Command aminstall hosts the interpreter end-to-end: it wires a real
// (or in-memory, under -mem) host adapter and a terminal dialog
// backend, builds a small demonstration installation script out of
// node/builtins constructors, and runs it. There is no concrete-syntax
// parser in this port (see the module's Non-goals), so the script below
// stands in for what a real Installer source file would otherwise
// compile down to.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/amiga-tools/aminstall/builtins"
	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/env"
	"github.com/amiga-tools/aminstall/eval"
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/node"
)

func tracer() tracing.Trace {
	return tracing.Select("aminstall.cmd")
}

func traceLevel(s string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(s)
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()

	appName := flag.String("app", "DemoApp", "application name shown in the welcome banner")
	source := flag.String("source", "demo/src", "source directory to install from")
	dest := flag.String("dest", "demo/dest", "destination directory")
	level := flag.Int64("level", 1, "user level: 0 novice, 1 average, 2 expert")
	pretend := flag.Bool("pretend", false, "dry run: log intended actions without touching the host")
	memHost := flag.Bool("mem", false, "use an in-memory host instead of the real filesystem")
	lang := flag.String("lang", "", "startup language; defaults to the host locale probe")
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	flag.Parse()

	tracer().SetTraceLevel(traceLevel(*tlevel))
	tracer().Infof("starting %s, user level %d", *appName, *level)

	var h host.Host
	if *memHost {
		m := host.NewMem()
		m.PutDir(*source)
		m.PutFile(*source+"/readme.txt", []byte("demo payload"))
		m.PutDir(*dest)
		h = m
	} else {
		h = host.NewPosix()
	}

	language := *lang
	if language == "" {
		language = h.Locale()
	}
	e := env.New(env.BootstrapOptions{
		AppName:     *appName,
		UserLevel:   *level,
		Language:    language,
		DefaultDest: *dest,
	})

	term, err := dialog.NewTerminal(fmt.Sprintf("%s> ", *appName))
	if err != nil {
		pterm.Error.Printfln("cannot start terminal dialog: %v", err)
		os.Exit(1)
	}
	defer term.Close()

	ev := eval.New(e, h, term)
	if *pretend {
		ev.SetNumVar("pretend", 1)
	}

	root := e.Root
	root.Push(demoWelcome())
	root.Push(demoMakeDest(*dest))
	root.Push(demoCopy(*source, *dest))
	root.Push(demoMessageDone())

	ev.Run(root)
}

func demoWelcome() *node.Node {
	n, _ := builtins.New("welcome")
	return n
}

func demoMakeDest(dest string) *node.Node {
	n, _ := builtins.New("makedir")
	n.Push(node.NewString(dest))
	return n
}

func demoCopy(source, dest string) *node.Node {
	n, _ := builtins.New("copyfiles")
	n.Push(optionString(node.OptSource, source))
	n.Push(optionString(node.OptDest, dest))
	return n
}

func demoMessageDone() *node.Node {
	n, _ := builtins.New("message")
	n.Push(node.NewString("Installation finished."))
	return n
}

func optionString(tag node.OptTag, value string) *node.Node {
	opt := node.NewOption(tag)
	opt.Push(node.NewString(value))
	return opt
}
