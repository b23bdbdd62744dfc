// Package history purges per-day puzzle inputs from git history.
//
// For every day directory beneath the archive root the service runs
//
//	git filter-branch -f --index-filter "git rm -rf --cached --ignore-unmatch -- '<day>/input.txt'" HEAD
//
// as a structured argument list in the archive root. The path inside the index
// filter is single-quoted because git evaluates the filter through a shell.
// Invocations run one after another; a failing directory is reported and the
// remaining directories are still rewritten.
package history
