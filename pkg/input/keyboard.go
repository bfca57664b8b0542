package input

import (
	"runtime"

	"github.com/go-vgo/robotgo"
)

// TypeText 输入文字
func TypeText(text string) {
	robotgo.TypeStr(text)
}

// TypeTextWithInterval 按字符间隔输入文字, 间隔为 0 时整段输入
func TypeTextWithInterval(text string, intervalMs int) {
	if intervalMs <= 0 {
		robotgo.TypeStr(text)
		return
	}
	for _, r := range text {
		robotgo.TypeStr(string(r))
		robotgo.MilliSleep(intervalMs)
	}
}

// TypeLines 逐行输入文本, 行间用 Shift+Enter 软换行
func TypeLines(lines []string) {
	for i, line := range lines {
		if i > 0 {
			robotgo.KeyTap("enter", "shift")
			robotgo.MilliSleep(lineBreakDelayMs)
		}
		robotgo.MilliSleep(lineDelayMs)
		if line != "" {
			robotgo.TypeStr(line)
		}
	}
}

// KeyTap 按键
func KeyTap(key string, modifiers ...string) {
	if len(modifiers) > 0 {
		robotgo.KeyTap(key, modifiers)
	} else {
		robotgo.KeyTap(key)
	}
}

// KeyDown 按下键
func KeyDown(key string) {
	robotgo.KeyToggle(key, "down")
}

// KeyUp 释放键
func KeyUp(key string) {
	robotgo.KeyToggle(key, "up")
}

// HotKey 组合键, 最后一个为主键, 其余为修饰键
func HotKey(keys ...string) {
	if len(keys) == 0 {
		return
	}
	if len(keys) == 1 {
		robotgo.KeyTap(keys[0])
		return
	}
	robotgo.KeyTap(keys[len(keys)-1], keys[:len(keys)-1])
}

// SelectAll 全选
func SelectAll() {
	robotgo.KeyTap("a", primaryModifier())
}

// DeleteKey 删除选中内容
func DeleteKey() {
	robotgo.KeyTap("delete")
}

// MoveEndOfLine 光标移到行尾
func MoveEndOfLine() {
	if runtime.GOOS == "darwin" {
		robotgo.KeyTap("right", "cmd")
		return
	}
	robotgo.KeyTap("end")
}

// MoveEndOfText 光标移到全文末尾
func MoveEndOfText() {
	if runtime.GOOS == "darwin" {
		robotgo.KeyTap("down", "cmd")
		return
	}
	robotgo.KeyTap("end", "ctrl")
}
