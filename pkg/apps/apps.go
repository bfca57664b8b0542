// Package apps 枚举桌面应用及其主窗口，按进程聚合窗口信息
package apps

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

// ApplicationInfo 应用信息，每个进程保留最前的一个主窗口
type ApplicationInfo struct {
	ProcessID       uint32  `json:"pid"`
	ProcessName     string  `json:"process_name"`
	ProcessPath     string  `json:"process_path,omitempty"`
	MainWindowTitle string  `json:"main_window_title"`
	MainWindowClass string  `json:"main_window_class,omitempty"`
	IsVisible       bool    `json:"is_visible"`
	WindowHandle    uintptr `json:"-"`
}

// windowEntry 枚举阶段采集的单个顶层窗口
type windowEntry struct {
	handle  uintptr
	title   string
	class   string
	pid     uint32
	visible bool
}

// Manager 应用管理器，窗口操作委托给同一个自动化会话
type Manager struct {
	session uia.Automation
}

// NewManager 创建应用管理器
func NewManager(session uia.Automation) *Manager {
	return &Manager{session: session}
}

// All 枚举所有带可见主窗口的应用
func (m *Manager) All() ([]ApplicationInfo, error) {
	entries, err := listTopWindows()
	if err != nil {
		return nil, err
	}
	apps := groupByProcess(entries)
	for i := range apps {
		apps[i].ProcessName, apps[i].ProcessPath = processIdentity(apps[i].ProcessID)
	}
	return apps, nil
}

// FindByName 按进程名查找应用 (不区分大小写, 子串匹配)
func (m *Manager) FindByName(name string) ([]ApplicationInfo, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	matches := filterApps(all, name, func(app ApplicationInfo) string { return app.ProcessName })
	if len(matches) == 0 {
		return nil, uia.ErrNotFound
	}
	return matches, nil
}

// FindByTitle 按主窗口标题查找应用 (不区分大小写, 子串匹配)
func (m *Manager) FindByTitle(title string) ([]ApplicationInfo, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	matches := filterApps(all, title, func(app ApplicationInfo) string { return app.MainWindowTitle })
	if len(matches) == 0 {
		return nil, uia.ErrNotFound
	}
	return matches, nil
}

// WindowByPID 返回进程主窗口的自动化句柄
func (m *Manager) WindowByPID(pid uint32) (uia.Window, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	for _, app := range all {
		if app.ProcessID == pid {
			return m.session.WindowFromHandle(app.WindowHandle)
		}
	}
	return nil, uia.ErrNotFound
}

// WindowByName 返回进程名匹配的第一个应用的主窗口
func (m *Manager) WindowByName(name string) (uia.Window, error) {
	matches, err := m.FindByName(name)
	if err != nil {
		return nil, err
	}
	return m.session.WindowFromHandle(matches[0].WindowHandle)
}

// groupByProcess 按 PID 聚合窗口, 每个进程保留枚举顺序里的第一个窗口
// (枚举顺序即 Z 序, 第一个就是该进程最前的窗口)
func groupByProcess(entries []windowEntry) []ApplicationInfo {
	seen := make(map[uint32]bool, len(entries))
	apps := make([]ApplicationInfo, 0, len(entries))

	for _, entry := range entries {
		if entry.pid == 0 || seen[entry.pid] {
			continue
		}
		seen[entry.pid] = true

		apps = append(apps, ApplicationInfo{
			ProcessID:       entry.pid,
			MainWindowTitle: entry.title,
			MainWindowClass: entry.class,
			IsVisible:       entry.visible,
			WindowHandle:    entry.handle,
		})
	}
	return apps
}

// filterApps 按字段子串过滤应用
func filterApps(apps []ApplicationInfo, needle string, field func(ApplicationInfo) string) []ApplicationInfo {
	needle = strings.ToLower(needle)
	var matches []ApplicationInfo
	for _, app := range apps {
		if strings.Contains(strings.ToLower(field(app)), needle) {
			matches = append(matches, app)
		}
	}
	return matches
}

// processIdentity 查询进程名和可执行文件路径。
// 优先走平台原生接口, 被拒绝时退回 gopsutil
func processIdentity(pid uint32) (name, path string) {
	if path = nativeProcessPath(pid); path != "" {
		return filepath.Base(path), path
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", ""
	}
	name, _ = proc.Name()
	path, _ = proc.Exe()
	if name == "" && path != "" {
		name = filepath.Base(path)
	}
	return name, path
}
