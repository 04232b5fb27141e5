/*
Package ierrors implements the Installer language's error taxonomy and its
control-flow signals (HALT, ABORT, PANIC, BAIL).

The language distinguishes two things a Go port is tempted to conflate: a
Code, which is a value a script can inspect, trap and recover from (see
(trap MASK BODY) in package builtins), and a Signal, which unwinds the
tree-walk in package eval the way a loop "break" unwinds a for-loop — it is
never trapped; only HALT/ABORT are ever produced by user action and they
always run to the top of eval.Run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package ierrors
