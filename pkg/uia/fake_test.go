package uia

import (
	"strconv"
)

// fakeElement 测试用元素实现，记录点击与写入调用
type fakeElement struct {
	name         string
	ctype        ControlType
	className    string
	automationID string
	bounds       *Rect
	enabled      bool
	visible      bool
	text         string
	children     []*fakeElement

	nameErr     error
	typeErr     error
	childrenErr error
	clickErr    error
	setTextErr  error

	clickCount   int
	setTextCalls []string
	appendCalls  []string
	focusCount   int
}

var _ Element = (*fakeElement)(nil)

func newFakeElement(name string, ct ControlType) *fakeElement {
	return &fakeElement{name: name, ctype: ct, enabled: true, visible: true}
}

func (f *fakeElement) Name() (string, error) {
	if f.nameErr != nil {
		return "", f.nameErr
	}
	return f.name, nil
}

func (f *fakeElement) ControlType() (ControlType, error) {
	if f.typeErr != nil {
		return CustomControl, f.typeErr
	}
	return f.ctype, nil
}

func (f *fakeElement) ClassName() (string, error)    { return f.className, nil }
func (f *fakeElement) AutomationID() (string, error) { return f.automationID, nil }
func (f *fakeElement) Bounds() (*Rect, error)        { return f.bounds, nil }
func (f *fakeElement) IsEnabled() (bool, error)      { return f.enabled, nil }
func (f *fakeElement) IsVisible() (bool, error)      { return f.visible, nil }
func (f *fakeElement) Text() (string, error)         { return f.text, nil }

func (f *fakeElement) SetText(text string) error {
	if f.setTextErr != nil {
		return f.setTextErr
	}
	f.setTextCalls = append(f.setTextCalls, text)
	f.text = text
	return nil
}

func (f *fakeElement) AppendText(text string, pos AppendPosition) error {
	f.appendCalls = append(f.appendCalls, pos.String()+":"+text)
	f.text += text
	return nil
}

func (f *fakeElement) Click() error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clickCount++
	return nil
}

func (f *fakeElement) Focus() error {
	f.focusCount++
	return nil
}

func (f *fakeElement) Children() ([]Element, error) {
	if f.childrenErr != nil {
		return nil, f.childrenErr
	}
	out := make([]Element, 0, len(f.children))
	for _, child := range f.children {
		out = append(out, child)
	}
	return out, nil
}

func (f *fakeElement) Properties() (map[string]string, error) {
	return map[string]string{
		"name":         f.name,
		"control_type": f.ctype.String(),
		"class_name":   f.className,
		"enabled":      strconv.FormatBool(f.enabled),
	}, nil
}

func (f *fakeElement) SelectedText() (*SelectedTextInfo, error) {
	return &SelectedTextInfo{Text: "", StartOffset: 0, EndOffset: 0}, nil
}

// fakeWindow 测试用窗口实现
type fakeWindow struct {
	title      string
	class      string
	root       *fakeElement
	focused    *fakeElement
	titleErr   error
	focusedErr error
}

var _ Window = (*fakeWindow)(nil)

func (w *fakeWindow) Title() (string, error) {
	if w.titleErr != nil {
		return "", w.titleErr
	}
	return w.title, nil
}

func (w *fakeWindow) ClassName() (string, error)   { return w.class, nil }
func (w *fakeWindow) ProcessID() (uint32, error)   { return 4242, nil }
func (w *fakeWindow) ThreadID() (uint32, error)    { return 1, nil }
func (w *fakeWindow) ProcessName() (string, error) { return "fake.exe", nil }
func (w *fakeWindow) ProcessPath() (string, error) { return `C:\fake\fake.exe`, nil }
func (w *fakeWindow) IsVisible() (bool, error)     { return true, nil }
func (w *fakeWindow) IsMinimized() (bool, error)   { return false, nil }
func (w *fakeWindow) IsMaximized() (bool, error)   { return false, nil }
func (w *fakeWindow) Rect() (Rect, error)          { return NewRect(0, 0, 800, 600), nil }
func (w *fakeWindow) DPI() (uint32, error)         { return 96, nil }
func (w *fakeWindow) Activate() error              { return nil }
func (w *fakeWindow) BringToTop() error            { return nil }
func (w *fakeWindow) SetForeground() error         { return nil }

func (w *fakeWindow) FocusedElement() (Element, error) {
	if w.focusedErr != nil {
		return nil, w.focusedErr
	}
	if w.focused == nil {
		return nil, ErrNoFocus
	}
	return w.focused, nil
}

func (w *fakeWindow) UITree(opts TreeOptions) (*Tree, error) {
	return BuildTree(w.root, w.title, w.class, opts)
}

func (w *fakeWindow) FindElements(q *Query) ([]Element, error) {
	if w.root == nil {
		return nil, nil
	}
	return q.FindAll(w.root), nil
}

func (w *fakeWindow) TextElements(opts TextExtractionOptions) ([]TextElementInfo, error) {
	return ExtractText(w.root, opts), nil
}

func (w *fakeWindow) SelectedText() (*SelectedTextInfo, error) {
	el, err := w.FocusedElement()
	if err != nil {
		return nil, err
	}
	return el.SelectedText()
}

// fakeAutomation 测试用会话实现
type fakeAutomation struct {
	win     *fakeWindow
	winErr  error
	byName  map[string]*fakeElement
	findErr error
	closed  bool
}

var _ Automation = (*fakeAutomation)(nil)

func (a *fakeAutomation) ActiveWindow() (Window, error) {
	if a.winErr != nil {
		return nil, a.winErr
	}
	if a.win == nil {
		return nil, ErrNoActiveWindow
	}
	return a.win, nil
}

func (a *fakeAutomation) WindowContainingFocus() (Window, error) {
	return a.ActiveWindow()
}

func (a *fakeAutomation) FocusedElement() (Element, error) {
	if a.win == nil {
		return nil, ErrNoFocus
	}
	return a.win.FocusedElement()
}

func (a *fakeAutomation) FindByName(name string) (Element, error) {
	if a.findErr != nil {
		return nil, a.findErr
	}
	if el, ok := a.byName[name]; ok {
		return el, nil
	}
	return nil, ErrNotFound
}

func (a *fakeAutomation) FindByType(ct ControlType) (Element, error) {
	if a.win != nil && a.win.focused != nil && a.win.focused.ctype == ct {
		return a.win.focused, nil
	}
	for _, el := range a.byName {
		if el.ctype == ct {
			return el, nil
		}
	}
	return nil, ErrNotFound
}

func (a *fakeAutomation) WindowFromHandle(handle uintptr) (Window, error) {
	if a.win == nil || handle == 0 {
		return nil, ErrNotFound
	}
	return a.win, nil
}

func (a *fakeAutomation) Close() error {
	a.closed = true
	return nil
}
