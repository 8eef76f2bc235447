//go:build arenadebug

package core

// Invariant panics when ok is false.
func Invariant(ok bool, msg string) {
	if !ok {
		panic("invariant violated: " + msg)
	}
}
