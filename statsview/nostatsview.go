//go:build !statsview

package statsview

import "context"

// Start is a no-op in builds without the statsview tag.
func Start(context.Context) string {
	return ""
}

func Available() bool {
	return false
}
