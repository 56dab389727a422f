// Package pacing provides the delay strategies the collector waits on between
// pages and between cycles.
//
// Production runs use Uniform ranges (4-12s between pages, 30-60s between
// cycles by default). Tests inject None so loops run without wall-clock
// sleeping and can assert on iteration counts instead.
package pacing
