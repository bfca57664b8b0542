package uia

import (
	"encoding/json"
	"strings"
)

// ControlType 控件类型，数值与系统无障碍接口的 ControlTypeId 一致
type ControlType int32

const (
	ButtonControl      ControlType = 50000
	CalendarControl    ControlType = 50001
	CheckBoxControl    ControlType = 50002
	ComboBoxControl    ControlType = 50003
	EditControl        ControlType = 50004
	HyperlinkControl   ControlType = 50005
	ImageControl       ControlType = 50006
	ListItemControl    ControlType = 50007
	ListControl        ControlType = 50008
	MenuControl        ControlType = 50009
	MenuBarControl     ControlType = 50010
	MenuItemControl    ControlType = 50011
	ProgressBarControl ControlType = 50012
	RadioButtonControl ControlType = 50013
	ScrollBarControl   ControlType = 50014
	SliderControl      ControlType = 50015
	SpinnerControl     ControlType = 50016
	StatusBarControl   ControlType = 50017
	TabControl         ControlType = 50018
	TabItemControl     ControlType = 50019
	TextControl        ControlType = 50020
	ToolBarControl     ControlType = 50021
	ToolTipControl     ControlType = 50022
	TreeControl        ControlType = 50023
	TreeItemControl    ControlType = 50024
	CustomControl      ControlType = 50025
	GroupControl       ControlType = 50026
	ThumbControl       ControlType = 50027
	DataGridControl    ControlType = 50028
	DataItemControl    ControlType = 50029
	DocumentControl    ControlType = 50030
	SplitButtonControl ControlType = 50031
	WindowControl      ControlType = 50032
	PaneControl        ControlType = 50033
	HeaderControl      ControlType = 50034
	HeaderItemControl  ControlType = 50035
	TableControl       ControlType = 50036
	TitleBarControl    ControlType = 50037
	SeparatorControl   ControlType = 50038
)

var controlTypeNames = map[ControlType]string{
	ButtonControl:      "Button",
	CalendarControl:    "Calendar",
	CheckBoxControl:    "CheckBox",
	ComboBoxControl:    "ComboBox",
	EditControl:        "Edit",
	HyperlinkControl:   "Hyperlink",
	ImageControl:       "Image",
	ListItemControl:    "ListItem",
	ListControl:        "List",
	MenuControl:        "Menu",
	MenuBarControl:     "MenuBar",
	MenuItemControl:    "MenuItem",
	ProgressBarControl: "ProgressBar",
	RadioButtonControl: "RadioButton",
	ScrollBarControl:   "ScrollBar",
	SliderControl:      "Slider",
	SpinnerControl:     "Spinner",
	StatusBarControl:   "StatusBar",
	TabControl:         "Tab",
	TabItemControl:     "TabItem",
	TextControl:        "Text",
	ToolBarControl:     "ToolBar",
	ToolTipControl:     "ToolTip",
	TreeControl:        "Tree",
	TreeItemControl:    "TreeItem",
	CustomControl:      "Custom",
	GroupControl:       "Group",
	ThumbControl:       "Thumb",
	DataGridControl:    "DataGrid",
	DataItemControl:    "DataItem",
	DocumentControl:    "Document",
	SplitButtonControl: "SplitButton",
	WindowControl:      "Window",
	PaneControl:        "Pane",
	HeaderControl:      "Header",
	HeaderItemControl:  "HeaderItem",
	TableControl:       "Table",
	TitleBarControl:    "TitleBar",
	SeparatorControl:   "Separator",
}

var controlTypeByName = func() map[string]ControlType {
	m := make(map[string]ControlType, len(controlTypeNames))
	for ct, name := range controlTypeNames {
		m[strings.ToLower(name)] = ct
	}
	return m
}()

// String 返回控件类型名称，如 "Edit"
func (ct ControlType) String() string {
	if name, ok := controlTypeNames[ct]; ok {
		return name
	}
	return "Custom"
}

// ControlTypeFromID 根据数值 ID 解析控件类型，未知 ID 归为 Custom
func ControlTypeFromID(id int32) ControlType {
	ct := ControlType(id)
	if _, ok := controlTypeNames[ct]; ok {
		return ct
	}
	return CustomControl
}

// ControlTypeFromName 根据名称解析控件类型（不区分大小写），未知名称归为 Custom
func ControlTypeFromName(name string) ControlType {
	if ct, ok := controlTypeByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ct
	}
	return CustomControl
}

// IsEditable 是否为可编辑文本类控件
func (ct ControlType) IsEditable() bool {
	switch ct {
	case EditControl, DocumentControl, ComboBoxControl:
		return true
	}
	return false
}

// IsInputType 是否为可接收文本输入的控件类型。
// Pane 与 Custom 还需结合控件实际支持的模式判断，由平台实现补充。
func (ct ControlType) IsInputType() bool {
	switch ct {
	case EditControl, ComboBoxControl, CheckBoxControl, RadioButtonControl, SliderControl, TextControl, DocumentControl:
		return true
	}
	return false
}

// MarshalJSON 以名称形式序列化
func (ct ControlType) MarshalJSON() ([]byte, error) {
	return json.Marshal(ct.String())
}

// UnmarshalJSON 支持名称与数值两种形式
func (ct *ControlType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*ct = ControlTypeFromName(name)
		return nil
	}
	var id int32
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*ct = ControlTypeFromID(id)
	return nil
}
