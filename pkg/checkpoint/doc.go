// Package checkpoint persists the master set of a collection run.
//
// A run writes to a single timestamped file which is overwritten after
// every cycle and once more when the run ends. Writes go through a
// temporary file and a rename, so a crash leaves either the previous
// checkpoint or the new one, never a truncated file.
//
// A finished or interrupted snapshot can seed a later run:
//
//	seed, err := checkpoint.LoadSeed("followers_20240101_120000.txt", log)
package checkpoint
