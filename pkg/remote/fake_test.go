package remote

import (
	"github.com/PaysanCorrezien/ui-interaction/pkg/apps"
	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

// stubElement 测试用元素, 记录操作调用
type stubElement struct {
	name    string
	ctype   uia.ControlType
	text    string
	enabled bool
	visible bool
	kids    []uia.Element

	clickErr   error
	setTextErr error

	clickCount   int
	setTextCalls []string
	appendCalls  []string
}

var _ uia.Element = (*stubElement)(nil)

func newStubElement(name string, ct uia.ControlType) *stubElement {
	return &stubElement{name: name, ctype: ct, enabled: true, visible: true}
}

func (e *stubElement) Name() (string, error)                 { return e.name, nil }
func (e *stubElement) ControlType() (uia.ControlType, error) { return e.ctype, nil }
func (e *stubElement) ClassName() (string, error)            { return "StubClass", nil }
func (e *stubElement) AutomationID() (string, error)         { return "", nil }

func (e *stubElement) Bounds() (*uia.Rect, error) {
	r := uia.NewRect(10, 10, 110, 40)
	return &r, nil
}

func (e *stubElement) IsEnabled() (bool, error) { return e.enabled, nil }
func (e *stubElement) IsVisible() (bool, error) { return e.visible, nil }
func (e *stubElement) Text() (string, error)    { return e.text, nil }

func (e *stubElement) SetText(text string) error {
	if e.setTextErr != nil {
		return e.setTextErr
	}
	e.setTextCalls = append(e.setTextCalls, text)
	e.text = text
	return nil
}

func (e *stubElement) AppendText(text string, pos uia.AppendPosition) error {
	e.appendCalls = append(e.appendCalls, pos.String()+":"+text)
	e.text += text
	return nil
}

func (e *stubElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clickCount++
	return nil
}

func (e *stubElement) Focus() error                     { return nil }
func (e *stubElement) Children() ([]uia.Element, error) { return e.kids, nil }

func (e *stubElement) Properties() (map[string]string, error) {
	return map[string]string{"name": e.name, "control_type": e.ctype.String()}, nil
}

func (e *stubElement) SelectedText() (*uia.SelectedTextInfo, error) {
	return &uia.SelectedTextInfo{Text: e.text, StartOffset: 0, EndOffset: len([]rune(e.text))}, nil
}

// stubWindow 测试用窗口, 元素树由 children 挂在窗口根元素下组成
type stubWindow struct {
	title    string
	root     *stubElement
	children []*stubElement
	focused  *stubElement

	activateCount int
}

var _ uia.Window = (*stubWindow)(nil)

func (w *stubWindow) Title() (string, error)       { return w.title, nil }
func (w *stubWindow) ClassName() (string, error)   { return "StubWindow", nil }
func (w *stubWindow) ProcessID() (uint32, error)   { return 1234, nil }
func (w *stubWindow) ThreadID() (uint32, error)    { return 1, nil }
func (w *stubWindow) ProcessName() (string, error) { return "stub", nil }
func (w *stubWindow) ProcessPath() (string, error) { return `C:\stub\stub.exe`, nil }
func (w *stubWindow) IsVisible() (bool, error)     { return true, nil }
func (w *stubWindow) IsMinimized() (bool, error)   { return false, nil }
func (w *stubWindow) IsMaximized() (bool, error)   { return false, nil }
func (w *stubWindow) Rect() (uia.Rect, error)      { return uia.NewRect(0, 0, 640, 480), nil }
func (w *stubWindow) DPI() (uint32, error)         { return 96, nil }

func (w *stubWindow) Activate() error {
	w.activateCount++
	return nil
}

func (w *stubWindow) BringToTop() error    { return nil }
func (w *stubWindow) SetForeground() error { return nil }

func (w *stubWindow) FocusedElement() (uia.Element, error) {
	if w.focused == nil {
		return nil, uia.ErrNoFocus
	}
	return w.focused, nil
}

func (w *stubWindow) UITree(opts uia.TreeOptions) (*uia.Tree, error) {
	return uia.BuildTree(w.rootElement(), w.title, "StubWindow", opts)
}

func (w *stubWindow) FindElements(q *uia.Query) ([]uia.Element, error) {
	return q.FindAll(w.rootElement()), nil
}

func (w *stubWindow) TextElements(opts uia.TextExtractionOptions) ([]uia.TextElementInfo, error) {
	return uia.ExtractText(w.rootElement(), opts), nil
}

func (w *stubWindow) SelectedText() (*uia.SelectedTextInfo, error) {
	if w.focused == nil {
		return nil, uia.ErrNoFocus
	}
	return w.focused.SelectedText()
}

func (w *stubWindow) rootElement() uia.Element {
	if w.root == nil {
		root := newStubElement(w.title, uia.WindowControl)
		for _, child := range w.children {
			root.kids = append(root.kids, child)
		}
		w.root = root
	}
	return w.root
}

// stubSession 测试用自动化会话
type stubSession struct {
	win     *stubWindow
	winErr  error
	byName  map[string]*stubElement
	focused *stubElement
	closed  bool
}

var _ uia.Automation = (*stubSession)(nil)

func (s *stubSession) ActiveWindow() (uia.Window, error) {
	if s.winErr != nil {
		return nil, s.winErr
	}
	if s.win == nil {
		return nil, uia.ErrNoActiveWindow
	}
	return s.win, nil
}

func (s *stubSession) WindowContainingFocus() (uia.Window, error) {
	return s.ActiveWindow()
}

func (s *stubSession) FocusedElement() (uia.Element, error) {
	if s.focused == nil {
		return nil, uia.ErrNoFocus
	}
	return s.focused, nil
}

func (s *stubSession) FindByName(name string) (uia.Element, error) {
	if el, ok := s.byName[name]; ok {
		return el, nil
	}
	return nil, uia.ErrNotFound
}

func (s *stubSession) FindByType(ct uia.ControlType) (uia.Element, error) {
	if s.focused != nil && s.focused.ctype == ct {
		return s.focused, nil
	}
	for _, el := range s.byName {
		if el.ctype == ct {
			return el, nil
		}
	}
	return nil, uia.ErrNotFound
}

func (s *stubSession) WindowFromHandle(handle uintptr) (uia.Window, error) {
	if s.win == nil || handle == 0 {
		return nil, uia.ErrNotFound
	}
	return s.win, nil
}

func (s *stubSession) Close() error {
	s.closed = true
	return nil
}

// stubApps 测试用应用管理器
type stubApps struct {
	apps []apps.ApplicationInfo
	win  *stubWindow
}

var _ AppManager = (*stubApps)(nil)

func (m *stubApps) All() ([]apps.ApplicationInfo, error) {
	return m.apps, nil
}

func (m *stubApps) FindByName(name string) ([]apps.ApplicationInfo, error) {
	var out []apps.ApplicationInfo
	for _, app := range m.apps {
		if app.ProcessName == name {
			out = append(out, app)
		}
	}
	if len(out) == 0 {
		return nil, uia.ErrNotFound
	}
	return out, nil
}

func (m *stubApps) FindByTitle(title string) ([]apps.ApplicationInfo, error) {
	var out []apps.ApplicationInfo
	for _, app := range m.apps {
		if app.MainWindowTitle == title {
			out = append(out, app)
		}
	}
	if len(out) == 0 {
		return nil, uia.ErrNotFound
	}
	return out, nil
}

func (m *stubApps) WindowByPID(pid uint32) (uia.Window, error) {
	for _, app := range m.apps {
		if app.ProcessID == pid && m.win != nil {
			return m.win, nil
		}
	}
	return nil, uia.ErrNotFound
}

func (m *stubApps) WindowByName(name string) (uia.Window, error) {
	if _, err := m.FindByName(name); err != nil {
		return nil, err
	}
	if m.win == nil {
		return nil, uia.ErrNotFound
	}
	return m.win, nil
}
