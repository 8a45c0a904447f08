// Package storage manages the output directory that reports are written to.
//
// Report files are never overwritten: UniquePath appends a numeric suffix when a
// file with the generated name already exists, so two runs in the same second
// still produce two files. The default location is ./result.
package storage
