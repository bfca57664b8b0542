// Package uia 基于系统无障碍接口提供桌面 UI 自动化能力：
// 窗口与元素定位、属性读取、点击与文本写入、控件树遍历、文本提取。
//
// 所有操作都挂在显式创建的 Automation 会话上，不依赖包级全局状态；
// 调用方负责在用完后 Close 释放平台资源。
package uia

// Automation UI 自动化会话，对应一次平台无障碍接口的初始化
type Automation interface {
	// ActiveWindow 返回当前前台窗口，没有前台窗口时返回 ErrNoActiveWindow
	ActiveWindow() (Window, error)

	// WindowContainingFocus 返回包含焦点元素的顶层窗口
	WindowContainingFocus() (Window, error)

	// FocusedElement 返回当前焦点元素，没有焦点时返回 ErrNoFocus
	FocusedElement() (Element, error)

	// FindByName 按名称在整个桌面范围内查找元素，未命中返回 ErrNotFound
	FindByName(name string) (Element, error)

	// FindByType 按控件类型查找元素，优先检查当前焦点元素
	FindByType(ct ControlType) (Element, error)

	// WindowFromHandle 将原生窗口句柄包装为 Window，句柄无效时返回 ErrNotFound
	WindowFromHandle(handle uintptr) (Window, error)

	// Close 释放会话占用的平台资源
	Close() error
}

// Window 顶层窗口
type Window interface {
	Title() (string, error)
	ClassName() (string, error)
	ProcessID() (uint32, error)
	ThreadID() (uint32, error)
	ProcessName() (string, error)
	ProcessPath() (string, error)
	IsVisible() (bool, error)
	IsMinimized() (bool, error)
	IsMaximized() (bool, error)
	Rect() (Rect, error)
	DPI() (uint32, error)

	// Activate 激活窗口并置于前台，最小化的窗口先还原
	Activate() error
	BringToTop() error
	SetForeground() error

	// FocusedElement 返回窗口内的焦点元素，焦点不在本窗口内时返回 ErrNoFocus
	FocusedElement() (Element, error)

	// UITree 构建窗口的控件树快照，opts 零值字段取默认值
	UITree(opts TreeOptions) (*Tree, error)

	// FindElements 在窗口子树内按查询条件查找元素
	FindElements(q *Query) ([]Element, error)

	// TextElements 按提取选项收集窗口内的文本元素
	TextElements(opts TextExtractionOptions) ([]TextElementInfo, error)

	// SelectedText 返回窗口内当前选中的文本
	SelectedText() (*SelectedTextInfo, error)
}

// Element 控件元素
type Element interface {
	Name() (string, error)
	ControlType() (ControlType, error)
	ClassName() (string, error)
	AutomationID() (string, error)

	// Bounds 返回元素的屏幕矩形，元素不在屏幕上时返回 nil
	Bounds() (*Rect, error)
	IsEnabled() (bool, error)
	IsVisible() (bool, error)

	// Text 读取元素文本内容，优先取值模式，其次取文档文本
	Text() (string, error)

	// SetText 清空并写入文本，元素不可输入时返回 ErrNotInput
	SetText(text string) error

	// AppendText 在指定位置追加文本
	AppendText(text string, pos AppendPosition) error

	// Click 点击元素，优先调用元素自身的触发模式
	Click() error

	// Focus 将键盘焦点移到元素上
	Focus() error

	Children() ([]Element, error)

	// Properties 返回元素属性表，至少包含 name、control_type
	Properties() (map[string]string, error)

	// SelectedText 返回元素内当前选中的文本
	SelectedText() (*SelectedTextInfo, error)
}

// New 创建当前平台的 UI 自动化会话
func New() (Automation, error) {
	return newAutomation()
}
