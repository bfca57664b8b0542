//go:build windows

package apps

import (
	"syscall"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")
	psapi    = syscall.NewLazyDLL("psapi.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetModuleFileNameExW     = psapi.NewProc("GetModuleFileNameExW")
)

const (
	gwOwner    = 4
	gwlExStyle = ^uintptr(19) // -20

	wsExToolWindow uintptr = 0x00000080
	wsExAppWindow  uintptr = 0x00040000

	processQueryInformation = 0x0400
	processVMRead           = 0x0010
)

// listTopWindows 枚举所有可作为应用主窗口的顶层窗口。
// 过滤条件: 可见、有标题、无属主窗口、非工具窗口
func listTopWindows() ([]windowEntry, error) {
	entries := make([]windowEntry, 0, 64)

	callback := syscall.NewCallback(func(hwnd syscall.Handle, _ uintptr) uintptr {
		if ret, _, _ := procIsWindowVisible.Call(uintptr(hwnd)); ret == 0 {
			return 1
		}

		// 属主窗口非空的是对话框等附属窗口, 不算应用主窗口
		if owner, _, _ := procGetWindow.Call(uintptr(hwnd), gwOwner); owner != 0 {
			return 1
		}

		exStyle, _, _ := procGetWindowLongW.Call(uintptr(hwnd), gwlExStyle)
		if exStyle&wsExToolWindow != 0 && exStyle&wsExAppWindow == 0 {
			return 1
		}

		length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
		if length == 0 {
			return 1
		}

		buf := make([]uint16, length+1)
		procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(length+1))
		title := syscall.UTF16ToString(buf)
		if title == "" {
			return 1
		}

		var pid uint32
		procGetWindowThreadProcessId.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&pid)))
		if pid == 0 {
			return 1
		}

		classBuf := make([]uint16, 256)
		procGetClassNameW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&classBuf[0])), uintptr(len(classBuf)))

		entries = append(entries, windowEntry{
			handle:  uintptr(hwnd),
			title:   title,
			class:   syscall.UTF16ToString(classBuf),
			pid:     pid,
			visible: true,
		})
		return 1
	})

	procEnumWindows.Call(callback, 0)
	return entries, nil
}

// nativeProcessPath 通过进程句柄查询可执行文件完整路径, 权限不足时返回空串
func nativeProcessPath(pid uint32) string {
	handle, _, _ := procOpenProcess.Call(
		uintptr(processQueryInformation|processVMRead), 0, uintptr(pid))
	if handle == 0 {
		return ""
	}
	defer procCloseHandle.Call(handle)

	buf := make([]uint16, 1024)
	ret, _, _ := procGetModuleFileNameExW.Call(
		handle, 0, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf)
}
