// Package match provides types and functions for recorded fighting-game matches.
//
// The match package handles record representation, the player roster used to gate
// which opponents count towards statistics, and date-range filtering. Source pages
// print timestamps as "15 Jan 2024 13:45"; records that fall inside the configured
// range are rewritten to the "2024-01-15 13:45" display form.
package match
