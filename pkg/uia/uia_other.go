//go:build !windows

package uia

import (
	"fmt"
	"runtime"
)

func newAutomation() (Automation, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}
