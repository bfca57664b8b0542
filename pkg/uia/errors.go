package uia

import "errors"

// 哨兵错误。"未命中"类结果（ErrNotFound、ErrNoFocus、ErrNoActiveWindow）
// 与平台层故障严格区分：前者用 errors.Is 判断，后者原样向上传递。
var (
	// ErrNotFound 查找未命中任何元素
	ErrNotFound = errors.New("未找到匹配的元素")

	// ErrNoFocus 当前没有获得焦点的元素
	ErrNoFocus = errors.New("没有获得焦点的元素")

	// ErrNoActiveWindow 当前没有前台窗口
	ErrNoActiveWindow = errors.New("没有前台窗口")

	// ErrNotInput 元素不是可输入控件，不能写入文本
	ErrNotInput = errors.New("元素不是可输入控件")

	// ErrUnsupported 当前平台不支持该操作
	ErrUnsupported = errors.New("当前平台不支持 UI 自动化")
)

// IsNotFound 判断错误是否为"未命中"（包含查找未命中与焦点缺失）
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoFocus) ||
		errors.Is(err, ErrNoActiveWindow)
}
