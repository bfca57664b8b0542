//go:build windows

package uia

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")
	psapi    = syscall.NewLazyDLL("psapi.dll")

	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowPlacement       = user32.NewProc("GetWindowPlacement")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetDpiForWindow          = user32.NewProc("GetDpiForWindow")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procShowWindow               = user32.NewProc("ShowWindow")
	procBringWindowToTop         = user32.NewProc("BringWindowToTop")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procGetCurrentThreadId       = kernel32.NewProc("GetCurrentThreadId")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetModuleFileNameExW     = psapi.NewProc("GetModuleFileNameExW")
)

const (
	swShow           = 5
	swRestore        = 9
	swShowMinimized  = 2
	swShowMaximized  = 3
	gaRoot           = 2
	windowTextBufLen = 512

	processQueryInformation = 0x0400
	processVMRead           = 0x0010
)

type winPoint struct {
	X, Y int32
}

type winPlacement struct {
	Length         uint32
	Flags          uint32
	ShowCmd        uint32
	MinPosition    winPoint
	MaxPosition    winPoint
	NormalPosition Rect
}

// windowSnapshot 窗口创建时采集的 Win32 原生信息，
// 无障碍属性读取失败时作为兜底数据源
type windowSnapshot struct {
	hwnd        uintptr
	title       string
	className   string
	pid         uint32
	tid         uint32
	rect        Rect
	visible     bool
	minimized   bool
	maximized   bool
	dpi         uint32
	processPath string
}

// snapshotWindow 采集窗口句柄的原生信息
func snapshotWindow(hwnd uintptr) (*windowSnapshot, error) {
	if hwnd == 0 {
		return nil, fmt.Errorf("窗口句柄为空")
	}
	if ret, _, _ := procIsWindow.Call(hwnd); ret == 0 {
		return nil, fmt.Errorf("无效的窗口句柄: %#x", hwnd)
	}

	snap := &windowSnapshot{hwnd: hwnd, dpi: 96}

	buf := make([]uint16, windowTextBufLen)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	snap.title = syscall.UTF16ToString(buf)

	classBuf := make([]uint16, windowTextBufLen)
	procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&classBuf[0])), uintptr(len(classBuf)))
	snap.className = syscall.UTF16ToString(classBuf)

	tid, _, _ := procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&snap.pid)))
	snap.tid = uint32(tid)

	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&snap.rect)))

	if ret, _, _ := procIsWindowVisible.Call(hwnd); ret != 0 {
		snap.visible = true
	}

	var placement winPlacement
	placement.Length = uint32(unsafe.Sizeof(placement))
	if ret, _, _ := procGetWindowPlacement.Call(hwnd, uintptr(unsafe.Pointer(&placement))); ret != 0 {
		snap.minimized = placement.ShowCmd == swShowMinimized
		snap.maximized = placement.ShowCmd == swShowMaximized
	}

	// GetDpiForWindow 需要 Win10 1607+, 找不到时保持默认 96
	if procGetDpiForWindow.Find() == nil {
		if dpi, _, _ := procGetDpiForWindow.Call(hwnd); dpi != 0 {
			snap.dpi = uint32(dpi)
		}
	}

	snap.processPath = processPathByPID(snap.pid)
	return snap, nil
}

// processPathByPID 查询进程可执行文件完整路径，失败时返回空串
func processPathByPID(pid uint32) string {
	if pid == 0 {
		return ""
	}
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

func foregroundWindow() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

func rootWindowOf(hwnd uintptr) uintptr {
	root, _, _ := procGetAncestor.Call(hwnd, gaRoot)
	if root == 0 {
		return hwnd
	}
	return root
}

func bringToTopHwnd(hwnd uintptr) error {
	if ret, _, _ := procBringWindowToTop.Call(hwnd); ret == 0 {
		return fmt.Errorf("BringWindowToTop 失败")
	}
	return nil
}

func setForegroundHwnd(hwnd uintptr) error {
	if ret, _, _ := procSetForegroundWindow.Call(hwnd); ret == 0 {
		return fmt.Errorf("SetForegroundWindow 失败")
	}
	return nil
}

// activateHwnd 激活窗口：挂接前台线程输入队列后置前，
// 最小化的窗口先还原
func activateHwnd(hwnd uintptr) error {
	foreground := foregroundWindow()
	var foregroundTid uintptr
	if foreground != 0 {
		foregroundTid, _, _ = procGetWindowThreadProcessId.Call(foreground, 0)
	}
	currentTid, _, _ := procGetCurrentThreadId.Call()
	targetTid, _, _ := procGetWindowThreadProcessId.Call(hwnd, 0)

	if foregroundTid != 0 && foregroundTid != currentTid {
		procAttachThreadInput.Call(currentTid, foregroundTid, 1)
		defer procAttachThreadInput.Call(currentTid, foregroundTid, 0)
	}
	if targetTid != 0 && targetTid != currentTid {
		procAttachThreadInput.Call(currentTid, targetTid, 1)
		defer procAttachThreadInput.Call(currentTid, targetTid, 0)
	}

	var placement winPlacement
	placement.Length = uint32(unsafe.Sizeof(placement))
	showCmd := uintptr(swShow)
	if ret, _, _ := procGetWindowPlacement.Call(hwnd, uintptr(unsafe.Pointer(&placement))); ret != 0 {
		if placement.ShowCmd == swShowMinimized {
			showCmd = swRestore
		}
	}
	procShowWindow.Call(hwnd, showCmd)
	procBringWindowToTop.Call(hwnd)

	if ret, _, _ := procSetForegroundWindow.Call(hwnd); ret == 0 {
		return fmt.Errorf("SetForegroundWindow 失败")
	}
	return nil
}
