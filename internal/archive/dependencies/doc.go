// Package dependencies substitutes production collaborators for the ones a
// command builder was not given.
package dependencies
