package execshell

import "strings"

const (
	singleQuoteConstant        = "'"
	escapedSingleQuoteConstant = `'\''`
)

// QuoteShellArgument renders value as a single POSIX shell word.
//
// Git evaluates filter expressions such as --index-filter through "sh -c", so any
// path interpolated into such an expression has to be quoted this way.
func QuoteShellArgument(value string) string {
	return singleQuoteConstant + strings.ReplaceAll(value, singleQuoteConstant, escapedSingleQuoteConstant) + singleQuoteConstant
}
