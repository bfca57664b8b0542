// Package input 提供鼠标、键盘和剪贴板操作
package input

import "runtime"

// Options 点击方式选项
type Options struct {
	Right  bool
	Double bool
}

// 行输入节奏, 过快会丢键
const (
	lineDelayMs      = 50
	lineBreakDelayMs = 20
	clickSettleMs    = 50
)

// primaryModifier 各平台的主修饰键
func primaryModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
