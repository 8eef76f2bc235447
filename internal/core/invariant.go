//go:build !arenadebug

package core

// Invariant checks a programming invariant. Release builds ignore it and the
// caller clamps instead; build with -tags arenadebug to panic.
func Invariant(ok bool, msg string) {}
