package uia

// TextExtractionOptions 文本提取选项
type TextExtractionOptions struct {
	// IncludeHidden 是否收集不可见元素
	IncludeHidden bool `json:"include_hidden"`
	// IncludeDisabled 是否收集已禁用元素
	IncludeDisabled bool `json:"include_disabled"`
	// MinTextLength 文本最短长度（按字符计），0 表示允许空文本
	MinTextLength int `json:"min_text_length"`
	// ControlTypes 只收集这些控件类型，空表示不限
	ControlTypes []ControlType `json:"control_types,omitempty"`
	// MaxDepth 最大遍历深度，0 表示不限
	MaxDepth int `json:"max_depth"`
	// IncludeNamesAsText 元素没有文本内容时用名称充当文本
	IncludeNamesAsText bool `json:"include_names_as_text"`
}

// DefaultTextOptions 默认提取选项
func DefaultTextOptions() TextExtractionOptions {
	return TextExtractionOptions{
		IncludeHidden:      false,
		IncludeDisabled:    true,
		MinTextLength:      1,
		MaxDepth:           20,
		IncludeNamesAsText: true,
	}
}

// AllTextOptions 提取所有元素，不做任何过滤
func AllTextOptions() TextExtractionOptions {
	return TextExtractionOptions{
		IncludeHidden:      true,
		IncludeDisabled:    true,
		MinTextLength:      0,
		MaxDepth:           0,
		IncludeNamesAsText: true,
	}
}

// VisibleTextOptions 只提取可见的文本类控件内容
func VisibleTextOptions() TextExtractionOptions {
	return TextExtractionOptions{
		IncludeHidden:      false,
		IncludeDisabled:    true,
		MinTextLength:      1,
		ControlTypes:       []ControlType{TextControl, EditControl, DocumentControl},
		MaxDepth:           20,
		IncludeNamesAsText: false,
	}
}

// EditableTextOptions 只提取可编辑控件，空文本框也收集
func EditableTextOptions() TextExtractionOptions {
	return TextExtractionOptions{
		IncludeHidden:      false,
		IncludeDisabled:    false,
		MinTextLength:      0,
		ControlTypes:       []ControlType{EditControl, DocumentControl, ComboBoxControl},
		MaxDepth:           20,
		IncludeNamesAsText: false,
	}
}

func (o TextExtractionOptions) typeAllowed(ct ControlType) bool {
	if len(o.ControlTypes) == 0 {
		return true
	}
	for _, allowed := range o.ControlTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// ExtractText 从 root 开始遍历并收集文本元素。
// 被过滤掉的节点不收集但照常下探，其子树中可能还有符合条件的元素。
func ExtractText(root Element, opts TextExtractionOptions) []TextElementInfo {
	if root == nil {
		return nil
	}
	var out []TextElementInfo
	collectText(root, "", 0, opts, &out)
	return out
}

func collectText(el Element, parentName string, depth int, opts TextExtractionOptions, out *[]TextElementInfo) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}

	name, _ := el.Name()
	ct := CustomControl
	if t, err := el.ControlType(); err == nil {
		ct = t
	}
	visible := false
	if v, err := el.IsVisible(); err == nil {
		visible = v
	}
	enabled := false
	if e, err := el.IsEnabled(); err == nil {
		enabled = e
	}

	if info, ok := buildTextInfo(el, name, ct, visible, enabled, parentName, depth, opts); ok {
		*out = append(*out, info)
	}

	children, err := el.Children()
	if err != nil {
		return
	}
	for _, child := range children {
		collectText(child, name, depth+1, opts, out)
	}
}

func buildTextInfo(el Element, name string, ct ControlType, visible, enabled bool,
	parentName string, depth int, opts TextExtractionOptions) (TextElementInfo, bool) {

	if !opts.IncludeHidden && !visible {
		return TextElementInfo{}, false
	}
	if !opts.IncludeDisabled && !enabled {
		return TextElementInfo{}, false
	}
	if !opts.typeAllowed(ct) {
		return TextElementInfo{}, false
	}

	text, _ := el.Text()
	if text == "" && opts.IncludeNamesAsText {
		text = name
	}
	if len([]rune(text)) < opts.MinTextLength {
		return TextElementInfo{}, false
	}

	info := TextElementInfo{
		Text:        text,
		Name:        name,
		ControlType: ct,
		IsEditable:  ct.IsEditable(),
		IsVisible:   visible,
		IsEnabled:   enabled,
		ParentName:  parentName,
		Depth:       depth,
	}
	info.AutomationID, _ = el.AutomationID()
	info.ClassName, _ = el.ClassName()
	info.Bounds, _ = el.Bounds()
	return info, true
}
