package input

import (
	"github.com/go-vgo/robotgo"
)

// MoveTo 移动鼠标到指定位置
func MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Click 在指定位置左键单击
func Click(x, y int) {
	ClickAt(x, y, &Options{})
}

// ClickAt 在指定位置点击（根据 Options 决定点击方式）
func ClickAt(x, y int, o *Options) {
	MoveTo(x, y)
	robotgo.MilliSleep(clickSettleMs) // 短暂延迟确保鼠标到位

	switch {
	case o != nil && o.Right:
		robotgo.Click("right", false)
	case o != nil && o.Double:
		robotgo.Click("left", true)
	default:
		robotgo.Click("left", false)
	}
}

// Scroll 滚动
func Scroll(x, y int) {
	robotgo.Scroll(x, y)
}

// ScrollUp 向上滚动
func ScrollUp(lines int) {
	robotgo.ScrollDir(lines, "up")
}

// ScrollDown 向下滚动
func ScrollDown(lines int) {
	robotgo.ScrollDir(lines, "down")
}

// Location 获取鼠标当前位置
func Location() (x, y int) {
	return robotgo.Location()
}
