// Package diff compares two follower snapshots and writes a plain text
// report of who was lost and who was gained.
package diff
