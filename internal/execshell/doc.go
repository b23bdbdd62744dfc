// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and describes git invocations (repository checks and
// history rewrites) in human-readable terms through CommandMessageFormatter.
package execshell
