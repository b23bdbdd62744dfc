// Package prompt reads single-line operator confirmations.
package prompt
