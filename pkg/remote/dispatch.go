package remote

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
	"github.com/PaysanCorrezien/ui-interaction/pkg/apps"
	"github.com/PaysanCorrezien/ui-interaction/pkg/config"
	"github.com/PaysanCorrezien/ui-interaction/pkg/input"
	"github.com/PaysanCorrezien/ui-interaction/pkg/screen"
	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

// AppManager 调度器需要的应用管理能力
type AppManager interface {
	All() ([]apps.ApplicationInfo, error)
	FindByName(name string) ([]apps.ApplicationInfo, error)
	FindByTitle(title string) ([]apps.ApplicationInfo, error)
	WindowByPID(pid uint32) (uia.Window, error)
	WindowByName(name string) (uia.Window, error)
}

var _ AppManager = (*apps.Manager)(nil)

// Dispatcher 把请求分发到自动化会话。
// find 类操作返回的元素登记在引用表里, 后续操作用 element_id 引用;
// 引用表跟随连接生命周期
type Dispatcher struct {
	session uia.Automation
	apps    AppManager
	cfg     *config.Config

	mu       sync.Mutex
	elements map[string]uia.Element
}

// NewDispatcher 创建调度器
func NewDispatcher(session uia.Automation, mgr AppManager, cfg *config.Config) *Dispatcher {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dispatcher{
		session:  session,
		apps:     mgr,
		cfg:      cfg,
		elements: make(map[string]uia.Element),
	}
}

// elementInfo 元素信息, find 类操作的返回载荷
type elementInfo struct {
	ElementID   string    `json:"element_id"`
	Name        string    `json:"name"`
	ControlType string    `json:"control_type"`
	ClassName   string    `json:"class_name,omitempty"`
	Enabled     bool      `json:"enabled"`
	Visible     bool      `json:"visible"`
	Bounds      *uia.Rect `json:"bounds,omitempty"`
}

// windowInfo 窗口信息
type windowInfo struct {
	Title       string   `json:"title"`
	ClassName   string   `json:"class_name,omitempty"`
	ProcessID   uint32   `json:"pid"`
	ProcessName string   `json:"process_name,omitempty"`
	Rect        uia.Rect `json:"rect"`
}

// Handle 处理单个请求并记录事件日志
func (d *Dispatcher) Handle(req *Request) *Response {
	start := time.Now()
	resp := d.dispatch(req)
	elapsed := float64(time.Since(start).Milliseconds())

	if resp.OK {
		logger.LogEvent("serve", true, elapsed, fmt.Sprintf("action=%s", req.Action))
	} else {
		logger.LogEvent("serve", false, elapsed,
			fmt.Sprintf("action=%s reason=%s: %s", req.Action, resp.Reason, resp.Error))
	}
	return resp
}

func (d *Dispatcher) dispatch(req *Request) *Response {
	payload := req.Payload
	if payload == nil {
		payload = map[string]interface{}{}
	}

	var result interface{}
	var err error

	switch req.Action {
	case ActionPing:
		result = map[string]interface{}{"pong": true, "time": time.Now().UnixMilli()}
	case ActionFocusedWindow:
		result, err = d.handleFocusedWindow()
	case ActionFocusedElement:
		result, err = d.handleFocusedElement()
	case ActionFindByName:
		result, err = d.handleFindByName(payload)
	case ActionFindByType:
		result, err = d.handleFindByType(payload)
	case ActionFindElements:
		result, err = d.handleFindElements(payload)
	case ActionClick:
		result, err = d.handleClick(payload)
	case ActionSetText:
		result, err = d.handleSetText(payload)
	case ActionAppendText:
		result, err = d.handleAppendText(payload)
	case ActionGetText:
		result, err = d.handleGetText(payload)
	case ActionSelectedText:
		result, err = d.handleSelectedText(payload)
	case ActionGetTree:
		result, err = d.handleGetTree(payload)
	case ActionExtractText:
		result, err = d.handleExtractText(payload)
	case ActionListApps:
		result, err = d.handleListApps()
	case ActionFindApps:
		result, err = d.handleFindApps(payload)
	case ActionActivateApp:
		result, err = d.handleActivateApp(payload)
	case ActionScreenshot:
		result, err = d.handleScreenshot(payload)
	case ActionTypeText:
		result, err = d.handleTypeText(payload)
	case ActionKeyPress:
		result, err = d.handleKeyPress(payload)
	case ActionScroll:
		result, err = d.handleScroll(payload)
	case ActionGetClipboard:
		result, err = d.handleGetClipboard()
	case ActionSetClipboard:
		result, err = d.handleSetClipboard(payload)
	default:
		return invalidResponse(req.ID, fmt.Sprintf("未知操作: %s", req.Action))
	}

	if err != nil {
		if pe, ok := err.(*payloadError); ok {
			return invalidResponse(req.ID, pe.msg)
		}
		return errResponse(req.ID, err)
	}
	return okResponse(req.ID, result)
}

// payloadError 参数错误, 映射为 invalid_payload
type payloadError struct {
	msg string
}

func (e *payloadError) Error() string { return e.msg }

func missingParam(name string) error {
	return &payloadError{msg: fmt.Sprintf("缺少 %s 参数", name)}
}

// register 登记元素并返回引用 ID
func (d *Dispatcher) register(el uia.Element) string {
	id := uuid.NewString()
	d.mu.Lock()
	d.elements[id] = el
	d.mu.Unlock()
	return id
}

func (d *Dispatcher) lookup(id string) (uia.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	return el, ok
}

// Release 清空元素引用表, 连接断开时调用
func (d *Dispatcher) Release() {
	d.mu.Lock()
	d.elements = make(map[string]uia.Element)
	d.mu.Unlock()
}

// resolveElement 按 element_id、name 或焦点定位目标元素
func (d *Dispatcher) resolveElement(payload map[string]interface{}) (uia.Element, error) {
	if id, ok := payload["element_id"].(string); ok && id != "" {
		if el, found := d.lookup(id); found {
			return el, nil
		}
		return nil, fmt.Errorf("%w: 元素引用 %s 不存在或已失效", uia.ErrNotFound, id)
	}
	if name, ok := payload["name"].(string); ok && name != "" {
		return d.session.FindByName(name)
	}
	return d.session.FocusedElement()
}

// makeElementInfo 登记元素并采集基本信息, 属性读取失败时保留零值
func (d *Dispatcher) makeElementInfo(el uia.Element) elementInfo {
	info := elementInfo{ElementID: d.register(el)}
	if name, err := el.Name(); err == nil {
		info.Name = name
	}
	if ct, err := el.ControlType(); err == nil {
		info.ControlType = ct.String()
	}
	if class, err := el.ClassName(); err == nil {
		info.ClassName = class
	}
	if enabled, err := el.IsEnabled(); err == nil {
		info.Enabled = enabled
	}
	if visible, err := el.IsVisible(); err == nil {
		info.Visible = visible
	}
	if bounds, err := el.Bounds(); err == nil {
		info.Bounds = bounds
	}
	return info
}

func makeWindowInfo(win uia.Window) (windowInfo, error) {
	title, err := win.Title()
	if err != nil {
		return windowInfo{}, fmt.Errorf("读取窗口标题失败: %w", err)
	}
	info := windowInfo{Title: title}
	if class, err := win.ClassName(); err == nil {
		info.ClassName = class
	}
	if pid, err := win.ProcessID(); err == nil {
		info.ProcessID = pid
	}
	if name, err := win.ProcessName(); err == nil {
		info.ProcessName = name
	}
	if rect, err := win.Rect(); err == nil {
		info.Rect = rect
	}
	return info, nil
}

func (d *Dispatcher) handleFocusedWindow() (interface{}, error) {
	win, err := d.session.ActiveWindow()
	if err != nil {
		return nil, err
	}
	info, err := makeWindowInfo(win)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (d *Dispatcher) handleFocusedElement() (interface{}, error) {
	el, err := d.session.FocusedElement()
	if err != nil {
		return nil, err
	}
	return d.makeElementInfo(el), nil
}

func (d *Dispatcher) handleFindByName(payload map[string]interface{}) (interface{}, error) {
	name, ok := payload["name"].(string)
	if !ok || name == "" {
		return nil, missingParam("name")
	}
	el, err := d.session.FindByName(name)
	if err != nil {
		return nil, err
	}
	return d.makeElementInfo(el), nil
}

func (d *Dispatcher) handleFindByType(payload map[string]interface{}) (interface{}, error) {
	typeName, ok := payload["control_type"].(string)
	if !ok || typeName == "" {
		return nil, missingParam("control_type")
	}
	el, err := d.session.FindByType(uia.ControlTypeFromName(typeName))
	if err != nil {
		return nil, err
	}
	return d.makeElementInfo(el), nil
}

func (d *Dispatcher) handleFindElements(payload map[string]interface{}) (interface{}, error) {
	queryRaw, ok := payload["query"]
	if !ok {
		return nil, missingParam("query")
	}
	data, err := json.Marshal(queryRaw)
	if err != nil {
		return nil, &payloadError{msg: fmt.Sprintf("查询条件无法序列化: %v", err)}
	}
	var q uia.Query
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, &payloadError{msg: fmt.Sprintf("查询条件格式错误: %v", err)}
	}

	win, err := d.session.ActiveWindow()
	if err != nil {
		return nil, err
	}
	found, err := win.FindElements(&q)
	if err != nil {
		return nil, err
	}

	infos := make([]elementInfo, 0, len(found))
	for _, el := range found {
		infos = append(infos, d.makeElementInfo(el))
	}
	return infos, nil
}

func (d *Dispatcher) handleClick(payload map[string]interface{}) (interface{}, error) {
	el, err := d.resolveElement(payload)
	if err != nil {
		return nil, err
	}
	if err := el.Click(); err != nil {
		return nil, err
	}
	return map[string]bool{"clicked": true}, nil
}

func (d *Dispatcher) handleSetText(payload map[string]interface{}) (interface{}, error) {
	text, ok := payload["text"].(string)
	if !ok {
		return nil, missingParam("text")
	}
	el, err := d.resolveElement(payload)
	if err != nil {
		return nil, err
	}
	if err := el.SetText(text); err != nil {
		return nil, err
	}
	return map[string]bool{"set": true}, nil
}

func (d *Dispatcher) handleAppendText(payload map[string]interface{}) (interface{}, error) {
	text, ok := payload["text"].(string)
	if !ok {
		return nil, missingParam("text")
	}
	pos := uia.AppendCurrentCursor
	if posName, ok := payload["position"].(string); ok && posName != "" {
		pos = uia.ParseAppendPosition(posName)
	}
	el, err := d.resolveElement(payload)
	if err != nil {
		return nil, err
	}
	if err := el.AppendText(text, pos); err != nil {
		return nil, err
	}
	return map[string]bool{"appended": true}, nil
}

func (d *Dispatcher) handleGetText(payload map[string]interface{}) (interface{}, error) {
	el, err := d.resolveElement(payload)
	if err != nil {
		return nil, err
	}
	text, err := el.Text()
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}

func (d *Dispatcher) handleSelectedText(payload map[string]interface{}) (interface{}, error) {
	if id, ok := payload["element_id"].(string); ok && id != "" {
		el, found := d.lookup(id)
		if !found {
			return nil, fmt.Errorf("%w: 元素引用 %s 不存在或已失效", uia.ErrNotFound, id)
		}
		return el.SelectedText()
	}

	// 选区属于持有键盘焦点的窗口, 不一定是前台窗口
	win, err := d.session.WindowContainingFocus()
	if err != nil {
		return nil, err
	}
	return win.SelectedText()
}

func (d *Dispatcher) handleGetTree(payload map[string]interface{}) (interface{}, error) {
	win, err := d.session.ActiveWindow()
	if err != nil {
		return nil, err
	}

	opts := uia.TreeOptions{MaxDepth: d.cfg.TreeMaxDepth}
	if depth, ok := payload["max_depth"].(float64); ok && depth > 0 {
		opts.MaxDepth = int(depth)
	}
	return win.UITree(opts)
}

func (d *Dispatcher) handleExtractText(payload map[string]interface{}) (interface{}, error) {
	win, err := d.session.ActiveWindow()
	if err != nil {
		return nil, err
	}

	preset, _ := payload["preset"].(string)
	var opts uia.TextExtractionOptions
	switch preset {
	case "", "default":
		opts = uia.DefaultTextOptions()
	case "all":
		opts = uia.AllTextOptions()
	case "visible":
		opts = uia.VisibleTextOptions()
	case "editable":
		opts = uia.EditableTextOptions()
	default:
		return nil, &payloadError{msg: fmt.Sprintf("未知提取预设: %s", preset)}
	}
	return win.TextElements(opts)
}

func (d *Dispatcher) handleListApps() (interface{}, error) {
	return d.apps.All()
}

func (d *Dispatcher) handleFindApps(payload map[string]interface{}) (interface{}, error) {
	if name, ok := payload["name"].(string); ok && name != "" {
		return d.apps.FindByName(name)
	}
	if title, ok := payload["title"].(string); ok && title != "" {
		return d.apps.FindByTitle(title)
	}
	return nil, missingParam("name 或 title")
}

func (d *Dispatcher) handleActivateApp(payload map[string]interface{}) (interface{}, error) {
	var win uia.Window
	var err error

	if pid, ok := payload["pid"].(float64); ok && pid > 0 {
		win, err = d.apps.WindowByPID(uint32(pid))
	} else if name, ok := payload["name"].(string); ok && name != "" {
		win, err = d.apps.WindowByName(name)
	} else {
		return nil, missingParam("name 或 pid")
	}
	if err != nil {
		return nil, err
	}

	if err := win.Activate(); err != nil {
		return nil, err
	}
	if d.cfg.ActivateWaitMs > 0 {
		time.Sleep(time.Duration(d.cfg.ActivateWaitMs) * time.Millisecond)
	}
	return map[string]bool{"activated": true}, nil
}

func (d *Dispatcher) handleScreenshot(payload map[string]interface{}) (interface{}, error) {
	img, err := screen.Capture()
	if err != nil {
		return nil, err
	}

	format, _ := payload["format"].(string)
	quality := 0
	if q, ok := payload["quality"].(float64); ok {
		quality = int(q)
	}

	uri, err := screen.ToBase64(img, format, quality)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return map[string]interface{}{
		"image":  uri,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}, nil
}

func (d *Dispatcher) handleTypeText(payload map[string]interface{}) (interface{}, error) {
	text, ok := payload["text"].(string)
	if !ok {
		return nil, missingParam("text")
	}
	input.TypeTextWithInterval(text, d.cfg.TypeIntervalMs)
	return map[string]bool{"typed": true}, nil
}

func (d *Dispatcher) handleKeyPress(payload map[string]interface{}) (interface{}, error) {
	keysRaw, ok := payload["keys"].([]interface{})
	if !ok || len(keysRaw) == 0 {
		return nil, missingParam("keys")
	}
	keys := make([]string, 0, len(keysRaw))
	for _, k := range keysRaw {
		if s, ok := k.(string); ok && s != "" {
			keys = append(keys, s)
		}
	}
	if len(keys) == 0 {
		return nil, &payloadError{msg: "keys 数组为空"}
	}

	// 修饰键在前, 主键在后
	input.HotKey(keys...)
	return map[string]interface{}{"pressed": true, "keys": keys}, nil
}

func (d *Dispatcher) handleScroll(payload map[string]interface{}) (interface{}, error) {
	direction, _ := payload["direction"].(string)
	amount := 3
	if a, ok := payload["amount"].(float64); ok && a > 0 {
		amount = int(a)
	}

	switch direction {
	case "up":
		input.ScrollUp(amount)
	case "down", "":
		input.ScrollDown(amount)
	default:
		return nil, &payloadError{msg: fmt.Sprintf("未知滚动方向: %s", direction)}
	}
	return map[string]bool{"scrolled": true}, nil
}

func (d *Dispatcher) handleGetClipboard() (interface{}, error) {
	text, err := input.ReadClipboard()
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}

func (d *Dispatcher) handleSetClipboard(payload map[string]interface{}) (interface{}, error) {
	text, ok := payload["text"].(string)
	if !ok {
		return nil, missingParam("text")
	}
	if err := input.CopyToClipboard(text); err != nil {
		return nil, err
	}
	return map[string]bool{"copied": true}, nil
}
