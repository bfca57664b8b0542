package apps

import (
	"testing"
)

func sampleEntries() []windowEntry {
	return []windowEntry{
		{handle: 0x100, title: "项目计划 - 记事本", class: "Notepad", pid: 1001, visible: true},
		{handle: 0x200, title: "收件箱 - 邮件", class: "MailWnd", pid: 2002, visible: true},
		{handle: 0x101, title: "备忘 - 记事本", class: "Notepad", pid: 1001, visible: true},
		{handle: 0x300, title: "设置", class: "SettingsWnd", pid: 3003, visible: true},
	}
}

func TestGroupByProcessFirstWindowWins(t *testing.T) {
	apps := groupByProcess(sampleEntries())

	if len(apps) != 3 {
		t.Fatalf("应聚合为 3 个应用, 实际 %d", len(apps))
	}

	// 枚举顺序即 Z 序, 同一进程保留第一个窗口
	if apps[0].ProcessID != 1001 || apps[0].MainWindowTitle != "项目计划 - 记事本" {
		t.Errorf("PID 1001 主窗口应为第一个枚举到的窗口, 实际 %+v", apps[0])
	}
	if apps[0].WindowHandle != 0x100 {
		t.Errorf("主窗口句柄应为 0x100, 实际 %#x", apps[0].WindowHandle)
	}
	if apps[1].ProcessID != 2002 || apps[2].ProcessID != 3003 {
		t.Errorf("聚合应保持枚举顺序, 实际 %d, %d", apps[1].ProcessID, apps[2].ProcessID)
	}
}

func TestGroupByProcessSkipsZeroPID(t *testing.T) {
	entries := []windowEntry{
		{handle: 0x400, title: "无主窗口", pid: 0, visible: true},
		{handle: 0x500, title: "正常窗口", pid: 5005, visible: true},
	}

	apps := groupByProcess(entries)
	if len(apps) != 1 {
		t.Fatalf("PID 为 0 的窗口应被跳过, 实际聚合 %d 个", len(apps))
	}
	if apps[0].ProcessID != 5005 {
		t.Errorf("应保留 PID 5005, 实际 %d", apps[0].ProcessID)
	}
}

func TestGroupByProcessEmpty(t *testing.T) {
	apps := groupByProcess(nil)
	if len(apps) != 0 {
		t.Errorf("空输入应返回空列表, 实际 %d 个", len(apps))
	}
}

func TestFilterAppsByTitle(t *testing.T) {
	apps := groupByProcess(sampleEntries())

	matches := filterApps(apps, "记事本", func(app ApplicationInfo) string { return app.MainWindowTitle })
	if len(matches) != 1 {
		t.Fatalf("标题含 记事本 的应用应为 1 个, 实际 %d", len(matches))
	}
	if matches[0].ProcessID != 1001 {
		t.Errorf("命中应用 PID 应为 1001, 实际 %d", matches[0].ProcessID)
	}
}

func TestFilterAppsCaseInsensitive(t *testing.T) {
	apps := []ApplicationInfo{
		{ProcessID: 1, ProcessName: "Chrome.exe"},
		{ProcessID: 2, ProcessName: "notepad.exe"},
	}

	matches := filterApps(apps, "CHROME", func(app ApplicationInfo) string { return app.ProcessName })
	if len(matches) != 1 || matches[0].ProcessID != 1 {
		t.Errorf("大小写不敏感匹配失败: %+v", matches)
	}

	// 子串匹配
	matches = filterApps(apps, "pad", func(app ApplicationInfo) string { return app.ProcessName })
	if len(matches) != 1 || matches[0].ProcessID != 2 {
		t.Errorf("子串匹配失败: %+v", matches)
	}
}

func TestFilterAppsNoMatch(t *testing.T) {
	apps := []ApplicationInfo{{ProcessID: 1, ProcessName: "chrome.exe"}}

	matches := filterApps(apps, "firefox", func(app ApplicationInfo) string { return app.ProcessName })
	if len(matches) != 0 {
		t.Errorf("无命中时应返回空, 实际 %+v", matches)
	}
}
