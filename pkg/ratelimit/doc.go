// Package ratelimit provides an optional hard ceiling on request rate.
//
// The collector's randomized pacing already spaces requests out; the ceiling
// is a second guard for operators who want a strict requests-per-minute
// bound regardless of the pacing ranges configured.
package ratelimit
