package uia

import (
	"errors"
	"fmt"
	"io"
)

// RunDemo 运行演示流程，与 scripts/example.py 行为一致：
// 读取前台窗口标题，按名称查找 Login 控件并点击，
// 再检查窗口内的焦点元素，焦点在编辑框上时写入示例文本。
//
// 没有前台窗口时直接返回错误；窗口内没有焦点元素只是跳过后半段，
// 不算失败。查找未命中与查找失败是两回事：前者打印提示继续，
// 后者中断流程并返回错误。
func RunDemo(a Automation, out io.Writer) error {
	win, err := a.ActiveWindow()
	if err != nil {
		return fmt.Errorf("获取前台窗口失败: %w", err)
	}
	title, err := win.Title()
	if err != nil {
		return fmt.Errorf("读取窗口标题失败: %w", err)
	}
	fmt.Fprintf(out, "Focused window: %s\n", title)

	loginButton, err := a.FindByName("Login")
	switch {
	case err == nil:
		fmt.Fprintln(out, "Found 'Login' control")
		if err := loginButton.Click(); err != nil {
			return fmt.Errorf("点击 Login 控件失败: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		fmt.Fprintln(out, "No 'Login' control found")
	default:
		return fmt.Errorf("查找 Login 控件失败: %w", err)
	}

	focused, err := win.FocusedElement()
	if err != nil {
		if errors.Is(err, ErrNoFocus) || errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("获取焦点元素失败: %w", err)
	}
	name, err := focused.Name()
	if err != nil {
		return fmt.Errorf("读取焦点元素名称失败: %w", err)
	}
	ct, err := focused.ControlType()
	if err != nil {
		return fmt.Errorf("读取焦点元素类型失败: %w", err)
	}
	fmt.Fprintf(out, "Focused element: %s (%s)\n", name, ct)

	if ct == EditControl {
		if err := focused.SetText("Hello from Python!"); err != nil {
			return fmt.Errorf("写入文本失败: %w", err)
		}
	}
	return nil
}
