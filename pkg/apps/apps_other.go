//go:build !windows

package apps

import (
	"fmt"
	"runtime"

	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

func listTopWindows() ([]windowEntry, error) {
	return nil, fmt.Errorf("%w: %s 平台不支持窗口枚举", uia.ErrUnsupported, runtime.GOOS)
}

func nativeProcessPath(pid uint32) string {
	return ""
}
