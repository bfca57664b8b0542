package uia

import "strings"

// AppendPosition 追加文本时的插入位置
type AppendPosition int

const (
	// AppendCurrentCursor 在当前光标位置追加
	AppendCurrentCursor AppendPosition = iota
	// AppendEndOfLine 移动到当前行尾后追加
	AppendEndOfLine
	// AppendEndOfText 移动到全文末尾后追加
	AppendEndOfText
)

func (p AppendPosition) String() string {
	switch p {
	case AppendEndOfLine:
		return "end_of_line"
	case AppendEndOfText:
		return "end_of_text"
	default:
		return "current_cursor"
	}
}

// ParseAppendPosition 解析追加位置，空串与未知值归为当前光标位置
func ParseAppendPosition(s string) AppendPosition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "end_of_line", "eol":
		return AppendEndOfLine
	case "end_of_text", "eot", "end":
		return AppendEndOfText
	default:
		return AppendCurrentCursor
	}
}

// TextElementInfo 文本提取结果中的单个元素
type TextElementInfo struct {
	Text         string      `json:"text"`
	Name         string      `json:"name"`
	ControlType  ControlType `json:"control_type"`
	AutomationID string      `json:"automation_id,omitempty"`
	ClassName    string      `json:"class_name,omitempty"`
	Bounds       *Rect       `json:"bounds,omitempty"`
	IsSelected   bool        `json:"is_selected"`
	IsEditable   bool        `json:"is_editable"`
	IsVisible    bool        `json:"is_visible"`
	IsEnabled    bool        `json:"is_enabled"`
	ParentName   string      `json:"parent_name,omitempty"`
	Depth        int         `json:"depth"`
}

// HasText 文本去除空白后是否非空
func (t TextElementInfo) HasText() bool {
	return strings.TrimSpace(t.Text) != ""
}

// OnScreen 元素是否可见且有屏幕位置
func (t TextElementInfo) OnScreen() bool {
	return t.IsVisible && t.Bounds != nil
}

// SelectedTextInfo 选中文本信息
type SelectedTextInfo struct {
	Text        string           `json:"text"`
	StartOffset int              `json:"start_offset"`
	EndOffset   int              `json:"end_offset"`
	Bounds      *Rect            `json:"bounds,omitempty"`
	ElementInfo *TextElementInfo `json:"element_info,omitempty"`
}

// Length 选中文本长度
func (s SelectedTextInfo) Length() int {
	if s.EndOffset < s.StartOffset {
		return 0
	}
	return s.EndOffset - s.StartOffset
}
