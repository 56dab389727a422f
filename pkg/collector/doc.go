// Package collector harvests a follower list across repeated pagination
// cycles.
//
// A CycleRunner walks the cursor chain once, pausing a random interval
// between pages, and returns whatever it gathered even when a page fails.
// An Accumulator merges cycles into the master set, checkpoints after each
// one and sleeps a longer random interval before the next, until the target
// size is reached. Five consecutive empty cycles with nothing accumulated
// end the run as a sustained failure.
//
// Everything runs on the caller's goroutine; there is never more than one
// request in flight.
package collector
