// Package remote 提供基于 WebSocket 的远程自动化服务：
// 客户端 (通常是 Python 脚本) 以 JSON 请求驱动本机的 UI 自动化会话
package remote

import (
	"errors"

	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

// Request 客户端请求
type Request struct {
	ID      string                 `json:"id"`
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Response 服务端响应
type Response struct {
	ID     string      `json:"id"`
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// Hello 连接建立后服务端发送的首帧
type Hello struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Version   string `json:"version"`
	Platform  string `json:"platform"`
}

// 失败原因, 客户端可据此做稳定的分支判断
const (
	ReasonNotFound       = "not_found"
	ReasonNoFocus        = "no_focus"
	ReasonUnsupported    = "unsupported"
	ReasonInvalidPayload = "invalid_payload"
	ReasonInternal       = "internal"
)

// 支持的操作
const (
	ActionAuth           = "auth"
	ActionPing           = "ping"
	ActionFocusedWindow  = "focused_window"
	ActionFocusedElement = "focused_element"
	ActionFindByName     = "find_by_name"
	ActionFindByType     = "find_by_type"
	ActionFindElements   = "find_elements"
	ActionClick          = "click"
	ActionSetText        = "set_text"
	ActionAppendText     = "append_text"
	ActionGetText        = "get_text"
	ActionSelectedText   = "selected_text"
	ActionGetTree        = "get_tree"
	ActionExtractText    = "extract_text"
	ActionListApps       = "list_apps"
	ActionFindApps       = "find_apps"
	ActionActivateApp    = "activate_app"
	ActionScreenshot     = "screenshot"
	ActionTypeText       = "type_text"
	ActionKeyPress       = "key_press"
	ActionScroll         = "scroll"
	ActionGetClipboard   = "get_clipboard"
	ActionSetClipboard   = "set_clipboard"
)

// classifyReason 将错误映射为稳定的失败原因
func classifyReason(err error) string {
	switch {
	case errors.Is(err, uia.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, uia.ErrNoFocus), errors.Is(err, uia.ErrNoActiveWindow):
		return ReasonNoFocus
	case errors.Is(err, uia.ErrUnsupported), errors.Is(err, uia.ErrNotInput):
		return ReasonUnsupported
	default:
		return ReasonInternal
	}
}

// okResponse 构造成功响应
func okResponse(id string, result interface{}) *Response {
	return &Response{ID: id, OK: true, Result: result}
}

// errResponse 按错误分类构造失败响应
func errResponse(id string, err error) *Response {
	return &Response{ID: id, OK: false, Error: err.Error(), Reason: classifyReason(err)}
}

// invalidResponse 构造参数错误响应
func invalidResponse(id, msg string) *Response {
	return &Response{ID: id, OK: false, Error: msg, Reason: ReasonInvalidPayload}
}
