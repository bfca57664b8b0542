//go:build windows

package uia

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
	"github.com/PaysanCorrezien/ui-interaction/pkg/input"
)

// 键盘操作节奏。写入前后留出控件响应时间, 过快会丢键
const (
	settleDelay      = 50 * time.Millisecond
	verifyDelay      = 100 * time.Millisecond
	verifyRetryDelay = 200 * time.Millisecond
)

// winElement Windows 平台元素
type winElement struct {
	owner *winAutomation
	el    *iUIAutomationElement
}

var _ Element = (*winElement)(nil)

func (e *winElement) Name() (string, error) {
	name, err := e.el.name()
	if err != nil {
		return "", fmt.Errorf("读取元素名称失败: %w", err)
	}
	return name, nil
}

func (e *winElement) ControlType() (ControlType, error) {
	id, err := e.el.controlTypeID()
	if err != nil {
		return CustomControl, fmt.Errorf("读取控件类型失败: %w", err)
	}
	return ControlTypeFromID(id), nil
}

func (e *winElement) ClassName() (string, error) {
	class, err := e.el.className()
	if err != nil {
		return "", fmt.Errorf("读取类名失败: %w", err)
	}
	return class, nil
}

func (e *winElement) AutomationID() (string, error) {
	id, err := e.el.automationID()
	if err != nil {
		return "", fmt.Errorf("读取自动化 ID 失败: %w", err)
	}
	return id, nil
}

func (e *winElement) Bounds() (*Rect, error) {
	rect, err := e.el.boundingRectangle()
	if err != nil {
		return nil, fmt.Errorf("读取元素位置失败: %w", err)
	}
	if rect.IsEmpty() {
		return nil, nil
	}
	return &rect, nil
}

func (e *winElement) IsEnabled() (bool, error) {
	enabled, err := e.el.isEnabled()
	if err != nil {
		return false, fmt.Errorf("读取启用状态失败: %w", err)
	}
	return enabled, nil
}

func (e *winElement) IsVisible() (bool, error) {
	offscreen, err := e.el.isOffscreen()
	if err != nil {
		return false, fmt.Errorf("读取可见状态失败: %w", err)
	}
	return !offscreen, nil
}

// Text 优先读取值模式内容, 其次读取文档全文
func (e *winElement) Text() (string, error) {
	if vp := e.valuePattern(); vp != nil {
		defer vp.Release()
		if value, err := vp.value(); err == nil && value != "" {
			return value, nil
		}
	}
	if tp := e.textPattern(); tp != nil {
		defer tp.Release()
		docRange, err := tp.documentRange()
		if err == nil && docRange != nil {
			defer docRange.Release()
			text, err := docRange.text(-1)
			if err == nil {
				return text, nil
			}
		}
	}
	return "", nil
}

func (e *winElement) valuePattern() *iUIAutomationValuePattern {
	unk, err := e.el.pattern(patternValue)
	if err != nil || unk == nil {
		return nil
	}
	return (*iUIAutomationValuePattern)(unsafe.Pointer(unk))
}

func (e *winElement) textPattern() *iUIAutomationTextPattern {
	unk, err := e.el.pattern(patternText)
	if err != nil || unk == nil {
		return nil
	}
	return (*iUIAutomationTextPattern)(unsafe.Pointer(unk))
}

func (e *winElement) invokePattern() *iUIAutomationInvokePattern {
	unk, err := e.el.pattern(patternInvoke)
	if err != nil || unk == nil {
		return nil
	}
	return (*iUIAutomationInvokePattern)(unsafe.Pointer(unk))
}

// isInputControl 判断元素能否接收文本输入。
// Pane 看是否支持值或文本模式, Custom 只看值模式
func (e *winElement) isInputControl() bool {
	ct, err := e.ControlType()
	if err != nil {
		return false
	}
	if ct.IsInputType() {
		return true
	}
	switch ct {
	case PaneControl:
		if vp := e.valuePattern(); vp != nil {
			vp.Release()
			return true
		}
		if tp := e.textPattern(); tp != nil {
			tp.Release()
			return true
		}
	case CustomControl:
		if vp := e.valuePattern(); vp != nil {
			vp.Release()
			return true
		}
	}
	return false
}

func (e *winElement) SetText(text string) error {
	start := time.Now()
	err := e.setText(text)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("set_text", false, elapsed, err.Error())
	} else {
		logger.LogEvent("set_text", true, elapsed, fmt.Sprintf("%d 字符", len([]rune(text))))
	}
	return err
}

func (e *winElement) setText(text string) error {
	if !e.isInputControl() {
		name, _ := e.Name()
		return fmt.Errorf("%w: %s", ErrNotInput, name)
	}

	if err := e.el.setFocus(); err != nil {
		logger.Warn("设置焦点失败, 继续尝试写入: %v", err)
	}

	// 先选中现有内容, 支持文档范围的控件直接全选文档
	if tp := e.textPattern(); tp != nil {
		if docRange, err := tp.documentRange(); err == nil && docRange != nil {
			docRange.selectRange()
			docRange.Release()
		}
		tp.Release()
	}
	time.Sleep(settleDelay)

	input.SelectAll()
	input.DeleteKey()
	time.Sleep(settleDelay)

	input.TypeLines(strings.Split(text, "\n"))

	// 回读校验, 不一致只告警不报错: 部分控件回读值带格式差异
	time.Sleep(verifyDelay)
	if got, err := e.Text(); err == nil && normalizeNewlines(got) != normalizeNewlines(text) {
		time.Sleep(verifyRetryDelay)
		if got, err = e.Text(); err == nil && normalizeNewlines(got) != normalizeNewlines(text) {
			logger.Warn("写入校验不一致: 期望 %q, 回读 %q", text, got)
		}
	}
	return nil
}

func (e *winElement) AppendText(text string, pos AppendPosition) error {
	if !e.isInputControl() {
		name, _ := e.Name()
		return fmt.Errorf("%w: %s", ErrNotInput, name)
	}

	if err := e.el.setFocus(); err != nil {
		logger.Warn("设置焦点失败, 继续尝试追加: %v", err)
	}
	time.Sleep(settleDelay)

	switch pos {
	case AppendEndOfLine:
		input.MoveEndOfLine()
	case AppendEndOfText:
		input.MoveEndOfText()
	case AppendCurrentCursor:
		// 保持当前光标位置
	}
	time.Sleep(settleDelay)

	input.TypeLines(strings.Split(text, "\n"))
	return nil
}

func (e *winElement) Click() error {
	start := time.Now()
	err := e.click()
	elapsed := float64(time.Since(start).Milliseconds())
	name, _ := e.Name()
	if err != nil {
		logger.LogEvent("click", false, elapsed, fmt.Sprintf("%s: %v", name, err))
	} else {
		logger.LogEvent("click", true, elapsed, name)
	}
	return err
}

// click 优先用触发模式, 不支持时点击元素中心
func (e *winElement) click() error {
	if ip := e.invokePattern(); ip != nil {
		defer ip.Release()
		if err := ip.invoke(); err == nil {
			return nil
		}
	}

	bounds, err := e.Bounds()
	if err != nil {
		return err
	}
	if bounds == nil {
		return fmt.Errorf("元素不在屏幕上, 无法点击")
	}
	x, y := bounds.Center()
	input.Click(int(x), int(y))
	return nil
}

func (e *winElement) Focus() error {
	if err := e.el.setFocus(); err != nil {
		return fmt.Errorf("设置焦点失败: %w", err)
	}
	return nil
}

// Children 用控件视图遍历器收集直接子元素, 遍历器不可用时回退为条件查找
func (e *winElement) Children() ([]Element, error) {
	var out []Element

	child, err := e.owner.walker.firstChild(e.el)
	if err == nil {
		for child != nil {
			out = append(out, e.owner.wrapElement(child))
			next, err := e.owner.walker.nextSibling(child)
			if err != nil {
				break
			}
			child = next
		}
		return out, nil
	}

	cond, err := e.owner.auto.trueCondition()
	if err != nil {
		return nil, fmt.Errorf("创建遍历条件失败: %w", err)
	}
	defer releaseCondition(cond)

	arr, err := e.el.findAll(scopeChildren, cond)
	if err != nil {
		return nil, fmt.Errorf("查找子元素失败: %w", err)
	}
	if arr == nil {
		return nil, nil
	}
	defer arr.Release()

	n, err := arr.length()
	if err != nil {
		return nil, fmt.Errorf("读取子元素数量失败: %w", err)
	}
	for i := int32(0); i < n; i++ {
		el, err := arr.element(i)
		if err != nil {
			continue
		}
		out = append(out, e.owner.wrapElement(el))
	}
	return out, nil
}

func (e *winElement) Properties() (map[string]string, error) {
	props := make(map[string]string, 5)
	if name, err := e.el.name(); err == nil {
		props["name"] = name
	}
	if id, err := e.el.controlTypeID(); err == nil {
		props["control_type"] = ControlTypeFromID(id).String()
	}
	if class, err := e.el.className(); err == nil {
		props["class_name"] = class
	}
	if enabled, err := e.el.isEnabled(); err == nil {
		props["enabled"] = fmt.Sprintf("%t", enabled)
	}
	if focusable, err := e.el.isKeyboardFocusable(); err == nil {
		props["keyboard_focusable"] = fmt.Sprintf("%t", focusable)
	}
	return props, nil
}

// SelectedText 读取元素内选中的文本, 不支持文本模式时返回空选区
func (e *winElement) SelectedText() (*SelectedTextInfo, error) {
	tp := e.textPattern()
	if tp == nil {
		return &SelectedTextInfo{}, nil
	}
	defer tp.Release()

	ranges, err := tp.selection()
	if err != nil {
		return nil, fmt.Errorf("读取选区失败: %w", err)
	}
	if ranges == nil {
		return &SelectedTextInfo{}, nil
	}
	defer ranges.Release()

	n, err := ranges.length()
	if err != nil || n == 0 {
		return &SelectedTextInfo{}, nil
	}

	var parts []string
	var bounds *Rect
	var elementInfo *TextElementInfo
	for i := int32(0); i < n; i++ {
		r, err := ranges.element(i)
		if err != nil {
			continue
		}
		if text, err := r.text(-1); err == nil && text != "" {
			parts = append(parts, text)
		}
		if elementInfo == nil {
			if encl, err := r.enclosingElement(); err == nil && encl != nil {
				wrapped := e.owner.wrapElement(encl)
				info := wrapped.textInfo()
				info.IsSelected = true
				elementInfo = &info
				bounds = info.Bounds
			}
		}
		r.Release()
	}

	text := strings.Join(parts, "\n")
	return &SelectedTextInfo{
		Text:        text,
		StartOffset: 0,
		EndOffset:   len([]rune(text)),
		Bounds:      bounds,
		ElementInfo: elementInfo,
	}, nil
}

// textInfo 把元素属性打包成文本提取信息
func (e *winElement) textInfo() TextElementInfo {
	info := TextElementInfo{}
	info.Name, _ = e.Name()
	if ct, err := e.ControlType(); err == nil {
		info.ControlType = ct
		info.IsEditable = ct.IsEditable()
	}
	info.Text, _ = e.Text()
	info.AutomationID, _ = e.AutomationID()
	info.ClassName, _ = e.ClassName()
	info.Bounds, _ = e.Bounds()
	info.IsVisible, _ = e.IsVisible()
	info.IsEnabled, _ = e.IsEnabled()
	return info
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
