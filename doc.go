/*
Package aminstall is an interpreter for the CBM Amiga Installer scripting
language: a Lisp-like, dynamically typed S-expression language used by
software authors to describe package installation — copying files,
renaming, deleting, creating directories, mutating icon metadata,
prompting the user, and editing startup files.

Package structure is as follows:

■ node: Package node implements the tagged AST node type the evaluator
walks — numbers, strings, symbols, native operators, user procedures,
options, and control sentinels.

■ env: Package env implements lexical and dotted-variable symbol tables,
organized as a scope tree rooted at the script's global environment.

■ ierrors: Package ierrors implements the error taxonomy and the
HALT/ABORT/trap control-flow signals that unwind evaluation.

■ host: Package host defines the file-system/icon/version-probe adapter
the evaluator calls into, plus a POSIX implementation and the Amiga-style
wildcard pattern matcher.

■ dialog: Package dialog defines the user-prompt backend the evaluator
calls into, plus a terminal implementation and a scripted test double.

■ eval: Package eval implements the tree-walking evaluator: run, invoke,
resolve, num, str, tru.

■ builtins: Package builtins implements the ~130 named operators of the
Installer language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package aminstall
