// Package utils holds small shared odds and ends that don't warrant a
// package of their own.
package utils

// Build metadata, stamped at link time via -ldflags.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
