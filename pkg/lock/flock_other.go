//go:build !unix

package lock

import "os"

// Advisory locking is only implemented on unix; elsewhere the in-process
// mutex of the workspace machine is the only serialization.
func flock(f *os.File, wait bool) error { return nil }

func funlock(f *os.File) error { return nil }
