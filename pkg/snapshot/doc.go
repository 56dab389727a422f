// Package snapshot holds the identifier set shared by the collector and the
// diff tool, and the on-disk listing format both of them use: one identifier
// per line, ascending order, UTF-8, no header.
package snapshot
