// Package layout describes how an exercise archive is organized on disk.
//
// A Pattern names the markers that identify day directories ("day-03") and the
// puzzle input files inside them ("input.txt", "input-example.txt"). Scanner
// applies a Pattern to an archive root and returns the matches in name order.
package layout
