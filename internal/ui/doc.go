// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger observes git invocations made through execshell and
// reports them as short sentences ("Removing day-03/input.txt from history of HEAD
// in /archive") while structured telemetry continues to flow through the
// diagnostic logger.
package ui
