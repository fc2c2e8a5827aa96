//go:build !unix

package stderr

import "os"

// Start is a no-op where fd 2 cannot be redirected.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op where fd 2 cannot be redirected.
func Stop() {}
