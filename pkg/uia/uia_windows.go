//go:build windows

package uia

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
)

const (
	sFalse         = 0x00000001
	rpcChangedMode = 0x80010106
)

// winAutomation Windows 平台的自动化会话。
// 会话级操作串行执行；元素属性读取依赖 COM 多线程套间自身的线程安全。
type winAutomation struct {
	mu     sync.Mutex
	auto   *iUIAutomation
	walker *iUIAutomationTreeWalker
	ownCOM bool
	closed bool
}

func newAutomation() (Automation, error) {
	ownCOM := true
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		switch {
		case ok && oleErr.Code() == sFalse:
			// 线程已按相同模型初始化, 计数照常需要配平
		case ok && oleErr.Code() == rpcChangedMode:
			// 线程已按其他模型初始化, 沿用现有套间
			ownCOM = false
		default:
			return nil, fmt.Errorf("初始化 COM 失败: %w", err)
		}
	}

	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		if ownCOM {
			ole.CoUninitialize()
		}
		return nil, fmt.Errorf("创建 UI 自动化实例失败: %w", err)
	}
	auto := (*iUIAutomation)(unsafe.Pointer(unk))

	walker, err := auto.controlViewWalker()
	if err != nil {
		auto.Release()
		if ownCOM {
			ole.CoUninitialize()
		}
		return nil, fmt.Errorf("获取控件树遍历器失败: %w", err)
	}

	logger.Debug("UI 自动化会话已创建")
	return &winAutomation{auto: auto, walker: walker, ownCOM: ownCOM}, nil
}

// wrapElement 包装原生元素并挂接释放器
func (a *winAutomation) wrapElement(el *iUIAutomationElement) *winElement {
	we := &winElement{owner: a, el: el}
	runtime.SetFinalizer(we, func(e *winElement) { e.el.Release() })
	return we
}

func (a *winAutomation) wrapWindow(el *iUIAutomationElement, hwnd uintptr) *winWindow {
	snap, err := snapshotWindow(hwnd)
	if err != nil {
		// 句柄失效时退回无障碍属性
		snap = nil
	}
	return &winWindow{owner: a, root: a.wrapElement(el), hwnd: hwnd, snap: snap}
}

func (a *winAutomation) ActiveWindow() (Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	hwnd := foregroundWindow()
	if hwnd == 0 {
		return nil, ErrNoActiveWindow
	}
	el, err := a.auto.elementFromHandle(hwnd)
	if err != nil {
		return nil, fmt.Errorf("从窗口句柄获取元素失败: %w", err)
	}
	if el == nil {
		return nil, ErrNoActiveWindow
	}
	return a.wrapWindow(el, hwnd), nil
}

func (a *winAutomation) WindowContainingFocus() (Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	focused, err := a.auto.focusedElement()
	if err != nil {
		return nil, fmt.Errorf("获取焦点元素失败: %w", err)
	}
	if focused == nil {
		return nil, ErrNoFocus
	}

	hwnd, err := a.windowHandleOf(focused)
	focused.Release()
	if err != nil {
		return nil, err
	}
	root := rootWindowOf(hwnd)
	el, err := a.auto.elementFromHandle(root)
	if err != nil {
		return nil, fmt.Errorf("从窗口句柄获取元素失败: %w", err)
	}
	return a.wrapWindow(el, root), nil
}

// windowHandleOf 沿父链向上找到第一个带原生句柄的元素
func (a *winAutomation) windowHandleOf(el *iUIAutomationElement) (uintptr, error) {
	current := el
	current.AddRef()
	for current != nil {
		hwnd, err := current.nativeWindowHandle()
		if err == nil && hwnd != 0 {
			current.Release()
			return hwnd, nil
		}
		parent, err := a.walker.parent(current)
		current.Release()
		if err != nil {
			return 0, fmt.Errorf("向上遍历父元素失败: %w", err)
		}
		current = parent
	}
	return 0, ErrNoFocus
}

func (a *winAutomation) WindowFromHandle(handle uintptr) (Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if handle == 0 {
		return nil, fmt.Errorf("%w: 窗口句柄为空", ErrNotFound)
	}
	if ret, _, _ := procIsWindow.Call(handle); ret == 0 {
		return nil, fmt.Errorf("%w: 句柄 %#x 不是窗口", ErrNotFound, handle)
	}
	el, err := a.auto.elementFromHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("从窗口句柄获取元素失败: %w", err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: 句柄 %#x 无对应元素", ErrNotFound, handle)
	}
	return a.wrapWindow(el, handle), nil
}

func (a *winAutomation) FocusedElement() (Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	el, err := a.auto.focusedElement()
	if err != nil {
		return nil, fmt.Errorf("获取焦点元素失败: %w", err)
	}
	if el == nil {
		return nil, ErrNoFocus
	}
	return a.wrapElement(el), nil
}

func (a *winAutomation) FindByName(name string) (Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	el, err := a.findByNameLocked(name)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("find", false, elapsed, fmt.Sprintf("by_name=%s: %v", name, err))
		return nil, err
	}
	logger.LogEvent("find", true, elapsed, fmt.Sprintf("by_name=%s", name))
	return el, nil
}

func (a *winAutomation) findByNameLocked(name string) (Element, error) {
	root, err := a.auto.rootElement()
	if err != nil {
		return nil, fmt.Errorf("获取桌面根元素失败: %w", err)
	}
	defer releaseElement(root)

	cond, err := a.auto.stringCondition(propName, name)
	if err != nil {
		return nil, fmt.Errorf("创建名称条件失败: %w", err)
	}
	defer releaseCondition(cond)

	found, err := root.findFirst(scopeDescendants, cond)
	if err != nil {
		return nil, fmt.Errorf("查找元素失败: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return a.wrapElement(found), nil
}

func (a *winAutomation) FindByType(ct ControlType) (Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	el, err := a.findByTypeLocked(ct)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("find", false, elapsed, fmt.Sprintf("by_type=%s: %v", ct, err))
		return nil, err
	}
	logger.LogEvent("find", true, elapsed, fmt.Sprintf("by_type=%s", ct))
	return el, nil
}

func (a *winAutomation) findByTypeLocked(ct ControlType) (Element, error) {
	// 焦点元素类型匹配时直接返回, 常见的"对当前输入框操作"场景不必全桌面扫描
	if focused, err := a.auto.focusedElement(); err == nil && focused != nil {
		if id, err := focused.controlTypeID(); err == nil && ControlTypeFromID(id) == ct {
			return a.wrapElement(focused), nil
		}
		focused.Release()
	}

	root, err := a.auto.rootElement()
	if err != nil {
		return nil, fmt.Errorf("获取桌面根元素失败: %w", err)
	}
	defer releaseElement(root)

	cond, err := a.auto.intCondition(propControlType, int32(ct))
	if err != nil {
		return nil, fmt.Errorf("创建类型条件失败: %w", err)
	}
	defer releaseCondition(cond)

	found, err := root.findFirst(scopeDescendants, cond)
	if err != nil {
		return nil, fmt.Errorf("查找元素失败: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return a.wrapElement(found), nil
}

func (a *winAutomation) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if a.walker != nil {
		a.walker.Release()
		a.walker = nil
	}
	if a.auto != nil {
		a.auto.Release()
		a.auto = nil
	}
	if a.ownCOM {
		ole.CoUninitialize()
	}
	logger.Debug("UI 自动化会话已关闭")
	return nil
}
