package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newFileLogger 创建只写文件的 logger, 返回日志文件路径
func newFileLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	l := New()
	l.SetConsole(false)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}
	return l, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	return string(data)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  Level
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"unknown", INFO},
		{"", INFO},
	}

	for _, c := range cases {
		if got := ParseLevel(c.input); got != c.want {
			t.Errorf("ParseLevel(%q) 应为 %v, 实际 %v", c.input, c.want, got)
		}
	}
}

func TestLevelString(t *testing.T) {
	if DEBUG.String() != "DEBUG" || ERROR.String() != "ERROR" {
		t.Errorf("级别名称不符: %s, %s", DEBUG, ERROR)
	}
	if Level(99).String() != "UNKNOWN" {
		t.Errorf("未知级别应为 UNKNOWN, 实际 %s", Level(99))
	}
}

func TestLevelFiltering(t *testing.T) {
	l, path := newFileLogger(t)
	defer l.Close()

	l.SetLevel(WARN)
	l.Debug("调试信息")
	l.Info("普通信息")
	l.Warn("警告信息")
	l.Error("错误信息")

	content := readLog(t, path)
	if strings.Contains(content, "调试信息") || strings.Contains(content, "普通信息") {
		t.Errorf("低于 WARN 的日志不应写入: %s", content)
	}
	if !strings.Contains(content, "警告信息") || !strings.Contains(content, "错误信息") {
		t.Errorf("WARN 及以上日志应写入: %s", content)
	}
}

func TestSetEnabledSuppressesAll(t *testing.T) {
	l, path := newFileLogger(t)
	defer l.Close()

	l.SetEnabled(false)
	l.Error("不应出现")

	if content := readLog(t, path); strings.Contains(content, "不应出现") {
		t.Errorf("禁用后仍有输出: %s", content)
	}
}

func TestLogEventFormat(t *testing.T) {
	l, path := newFileLogger(t)
	defer l.Close()

	l.LogEvent("click", true, 12.3, "name=登录")
	l.LogEvent("set_text", false, 450.0, "元素不可输入")

	content := readLog(t, path)
	if !strings.Contains(content, "click") || !strings.Contains(content, "OK") {
		t.Errorf("成功事件应含分类与 OK: %s", content)
	}
	if !strings.Contains(content, "12.3ms") {
		t.Errorf("事件应含耗时: %s", content)
	}
	if !strings.Contains(content, "set_text") || !strings.Contains(content, "NG") {
		t.Errorf("失败事件应含分类与 NG: %s", content)
	}
}

func TestLogEventFailureRespectsErrorLevel(t *testing.T) {
	l, path := newFileLogger(t)
	defer l.Close()

	// 失败事件按 ERROR 记录, 即使级别设为 ERROR 也应写入
	l.SetLevel(ERROR)
	l.LogEvent("find", false, 3.0, "未找到")
	l.LogEvent("find", true, 2.0, "by_name=ok")

	content := readLog(t, path)
	if !strings.Contains(content, "未找到") {
		t.Errorf("失败事件应按 ERROR 写入: %s", content)
	}
	if strings.Contains(content, "by_name=ok") {
		t.Errorf("成功事件按 INFO 记录, ERROR 级别下不应写入: %s", content)
	}
}

func TestSetFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "app.log")
	l := New()
	l.SetConsole(false)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("应自动创建父目录: %v", err)
	}
	defer l.Close()

	l.Info("写入测试")
	if content := readLog(t, path); !strings.Contains(content, "写入测试") {
		t.Errorf("日志未写入嵌套目录文件: %s", content)
	}
}
