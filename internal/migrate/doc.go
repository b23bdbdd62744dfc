// Package migrate moves puzzle input files out of their day directories into a
// single destination directory.
//
// Every day directory beneath the archive root is visited in name order. Inputs
// such as day-03/input.txt become input/day-03.txt and example inputs such as
// day-07/input-example.txt become input/day-07-example.txt. A failed move is
// reported and the migration continues with the next file; the failures are
// returned together once every directory has been visited.
package migrate
