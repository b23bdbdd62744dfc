// Package filesystem provides the operating-system backed implementation of the
// archive services' filesystem collaborator.
package filesystem
