//go:build windows

package uia

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
)

// winWindow Windows 平台顶层窗口。
// 创建时采集一次 Win32 快照, 快照缺失时逐项退回无障碍属性
type winWindow struct {
	owner *winAutomation
	root  *winElement
	hwnd  uintptr
	snap  *windowSnapshot
}

var _ Window = (*winWindow)(nil)

func (w *winWindow) Title() (string, error) {
	if w.snap != nil {
		return w.snap.title, nil
	}
	return w.root.Name()
}

func (w *winWindow) ClassName() (string, error) {
	if w.snap != nil {
		return w.snap.className, nil
	}
	return w.root.ClassName()
}

func (w *winWindow) ProcessID() (uint32, error) {
	if w.snap != nil {
		return w.snap.pid, nil
	}
	pid, err := w.root.el.processID()
	if err != nil {
		return 0, fmt.Errorf("读取窗口进程 ID 失败: %w", err)
	}
	return uint32(pid), nil
}

func (w *winWindow) ThreadID() (uint32, error) {
	if w.snap == nil {
		return 0, fmt.Errorf("窗口原生信息不可用, 无法获取线程 ID")
	}
	return w.snap.tid, nil
}

func (w *winWindow) ProcessName() (string, error) {
	path, err := w.ProcessPath()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		name = name[:len(name)-4]
	}
	return name, nil
}

func (w *winWindow) ProcessPath() (string, error) {
	if w.snap != nil {
		return w.snap.processPath, nil
	}
	pid, err := w.ProcessID()
	if err != nil {
		return "", err
	}
	return processPathByPID(pid), nil
}

func (w *winWindow) IsVisible() (bool, error) {
	if w.snap != nil {
		return w.snap.visible, nil
	}
	return w.root.IsVisible()
}

func (w *winWindow) IsMinimized() (bool, error) {
	if w.snap == nil {
		return false, fmt.Errorf("窗口原生信息不可用, 无法获取最小化状态")
	}
	return w.snap.minimized, nil
}

func (w *winWindow) IsMaximized() (bool, error) {
	if w.snap == nil {
		return false, fmt.Errorf("窗口原生信息不可用, 无法获取最大化状态")
	}
	return w.snap.maximized, nil
}

func (w *winWindow) Rect() (Rect, error) {
	if w.snap != nil {
		return w.snap.rect, nil
	}
	bounds, err := w.root.Bounds()
	if err != nil {
		return Rect{}, err
	}
	if bounds == nil {
		return Rect{}, nil
	}
	return *bounds, nil
}

func (w *winWindow) DPI() (uint32, error) {
	if w.snap != nil {
		return w.snap.dpi, nil
	}
	return 96, nil
}

func (w *winWindow) Activate() error {
	if w.hwnd != 0 {
		return activateHwnd(w.hwnd)
	}
	return w.root.Focus()
}

func (w *winWindow) BringToTop() error {
	if w.hwnd != 0 {
		return bringToTopHwnd(w.hwnd)
	}
	return w.root.Focus()
}

func (w *winWindow) SetForeground() error {
	if w.hwnd != 0 {
		return setForegroundHwnd(w.hwnd)
	}
	return w.root.Focus()
}

// FocusedElement 返回焦点元素, 并确认焦点确实落在本窗口内
func (w *winWindow) FocusedElement() (Element, error) {
	w.owner.mu.Lock()
	defer w.owner.mu.Unlock()

	focused, err := w.owner.auto.focusedElement()
	if err != nil {
		return nil, fmt.Errorf("获取焦点元素失败: %w", err)
	}
	if focused == nil {
		return nil, ErrNoFocus
	}

	if w.hwnd != 0 {
		hwnd, err := w.owner.windowHandleOf(focused)
		if err == nil && rootWindowOf(hwnd) != w.hwnd {
			// 焦点在别的窗口里
			focused.Release()
			return nil, ErrNoFocus
		}
	} else if pid, err := w.ProcessID(); err == nil {
		if focusedPid, err := focused.processID(); err == nil && uint32(focusedPid) != pid {
			focused.Release()
			return nil, ErrNoFocus
		}
	}
	return w.owner.wrapElement(focused), nil
}

func (w *winWindow) UITree(opts TreeOptions) (*Tree, error) {
	start := time.Now()
	title, _ := w.Title()
	class, _ := w.ClassName()

	tree, err := BuildTree(w.root, title, class, opts)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("tree", false, elapsed, err.Error())
		return nil, err
	}
	logger.LogEvent("tree", true, elapsed, fmt.Sprintf("%d 节点", tree.NodeCount()))
	return tree, nil
}

// FindElements 在窗口子树内查找。名称与类型条件走平台原生查找,
// 组合条件先收集子树再用纯匹配器过滤
func (w *winWindow) FindElements(q *Query) ([]Element, error) {
	if q == nil {
		return nil, fmt.Errorf("查询条件为空")
	}
	start := time.Now()
	found, err := w.findElements(q)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("find", false, elapsed, fmt.Sprintf("%s: %v", q, err))
		return nil, err
	}
	logger.LogEvent("find", true, elapsed, fmt.Sprintf("%s -> %d 个", q, len(found)))
	return found, nil
}

func (w *winWindow) findElements(q *Query) ([]Element, error) {
	switch q.kind {
	case queryByName:
		cond, err := w.owner.auto.stringCondition(propName, q.name)
		if err != nil {
			return nil, fmt.Errorf("创建名称条件失败: %w", err)
		}
		defer releaseCondition(cond)
		return w.findAllWrapped(cond)

	case queryByType:
		cond, err := w.owner.auto.intCondition(propControlType, int32(q.ct))
		if err != nil {
			return nil, fmt.Errorf("创建类型条件失败: %w", err)
		}
		defer releaseCondition(cond)
		return w.findAllWrapped(cond)

	case queryParent:
		return w.filterDescendants(func(el *winElement) bool {
			parent := w.parentOf(el)
			return parent != nil && q.subs[0].Matches(parent)
		})

	case queryAncestor:
		return w.filterDescendants(func(el *winElement) bool {
			for parent := w.parentOf(el); parent != nil; parent = w.parentOf(parent) {
				if q.subs[0].Matches(parent) {
					return true
				}
			}
			return false
		})

	default:
		return w.filterDescendants(func(el *winElement) bool {
			return q.Matches(el)
		})
	}
}

// findAllWrapped 按原生条件收集窗口子树内的全部匹配元素
func (w *winWindow) findAllWrapped(cond *iUIAutomationCondition) ([]Element, error) {
	arr, err := w.root.el.findAll(scopeDescendants, cond)
	if err != nil {
		return nil, fmt.Errorf("查找元素失败: %w", err)
	}
	if arr == nil {
		return nil, nil
	}
	defer arr.Release()

	n, err := arr.length()
	if err != nil {
		return nil, fmt.Errorf("读取结果数量失败: %w", err)
	}
	var out []Element
	for i := int32(0); i < n; i++ {
		el, err := arr.element(i)
		if err != nil {
			continue
		}
		out = append(out, w.owner.wrapElement(el))
	}
	return out, nil
}

// filterDescendants 收集子树所有元素后按谓词过滤
func (w *winWindow) filterDescendants(keep func(*winElement) bool) ([]Element, error) {
	cond, err := w.owner.auto.trueCondition()
	if err != nil {
		return nil, fmt.Errorf("创建遍历条件失败: %w", err)
	}
	defer releaseCondition(cond)

	arr, err := w.root.el.findAll(scopeDescendants, cond)
	if err != nil {
		return nil, fmt.Errorf("遍历子树失败: %w", err)
	}
	if arr == nil {
		return nil, nil
	}
	defer arr.Release()

	n, err := arr.length()
	if err != nil {
		return nil, fmt.Errorf("读取结果数量失败: %w", err)
	}
	var out []Element
	for i := int32(0); i < n; i++ {
		raw, err := arr.element(i)
		if err != nil {
			continue
		}
		el := w.owner.wrapElement(raw)
		if keep(el) {
			out = append(out, el)
		}
	}
	return out, nil
}

// parentOf 取元素的父元素, 根之上返回 nil
func (w *winWindow) parentOf(el *winElement) *winElement {
	parent, err := w.owner.walker.parent(el.el)
	if err != nil || parent == nil {
		return nil
	}
	return w.owner.wrapElement(parent)
}

func (w *winWindow) TextElements(opts TextExtractionOptions) ([]TextElementInfo, error) {
	start := time.Now()
	infos := ExtractText(w.root, opts)
	elapsed := float64(time.Since(start).Milliseconds())
	logger.LogEvent("extract", true, elapsed, fmt.Sprintf("%d 个文本元素", len(infos)))
	return infos, nil
}

func (w *winWindow) SelectedText() (*SelectedTextInfo, error) {
	focused, err := w.FocusedElement()
	if err != nil {
		return nil, err
	}
	return focused.SelectedText()
}
