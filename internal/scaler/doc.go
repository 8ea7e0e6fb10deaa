// Package scaler implements the cycle computation at the heart of
// niriscale: finding an output's position in an ordered candidate scale
// list and stepping to the next or previous entry with wraparound.
//
// The package is pure. It never talks to the compositor, so the same
// candidate list and current scale always produce the same next scale.
package scaler
