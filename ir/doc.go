// Package ir holds an assembled tree in memory for the passes that need
// the whole structure: ultrametricity checks, date imputation and
// filtering.
package ir
