//go:build windows

package uia

import (
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
)

// COM 接口封装。vtable 布局与系统 IDL 声明一一对应，
// 顺序不能调整。只封装本包用到的方法，其余槽位按名占位。

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

// 属性 ID
const (
	propControlType = 30003
	propName        = 30005
)

// 模式 ID
const (
	patternInvoke = 10000
	patternValue  = 10002
	patternText   = 10014
)

// 遍历范围
const (
	scopeChildren    = 2
	scopeDescendants = 4
)

func hresult(hr uintptr) error {
	if hr != 0 {
		return ole.NewError(hr)
	}
	return nil
}

// bstrOut 接收 BSTR 出参并转换为字符串，随后释放
func bstrOut(p *uint16) string {
	if p == nil {
		return ""
	}
	s := ole.BstrToString(p)
	ole.SysFreeString((*int16)(unsafe.Pointer(p)))
	return s
}

type iUIAutomation struct {
	ole.IUnknown
}

type iUIAutomationVtbl struct {
	ole.IUnknownVtbl
	CompareElements                           uintptr
	CompareRuntimeIds                         uintptr
	GetRootElement                            uintptr
	ElementFromHandle                         uintptr
	ElementFromPoint                          uintptr
	GetFocusedElement                         uintptr
	GetRootElementBuildCache                  uintptr
	ElementFromHandleBuildCache               uintptr
	ElementFromPointBuildCache                uintptr
	GetFocusedElementBuildCache               uintptr
	CreateTreeWalker                          uintptr
	GetControlViewWalker                      uintptr
	GetContentViewWalker                      uintptr
	GetRawViewWalker                          uintptr
	GetRawViewCondition                       uintptr
	GetControlViewCondition                   uintptr
	GetContentViewCondition                   uintptr
	CreateCacheRequest                        uintptr
	CreateTrueCondition                       uintptr
	CreateFalseCondition                      uintptr
	CreatePropertyCondition                   uintptr
	CreatePropertyConditionEx                 uintptr
	CreateAndCondition                        uintptr
	CreateAndConditionFromArray               uintptr
	CreateAndConditionFromNativeArray         uintptr
	CreateOrCondition                         uintptr
	CreateOrConditionFromArray                uintptr
	CreateOrConditionFromNativeArray          uintptr
	CreateNotCondition                        uintptr
	AddAutomationEventHandler                 uintptr
	RemoveAutomationEventHandler              uintptr
	AddPropertyChangedEventHandlerNativeArray uintptr
	AddPropertyChangedEventHandler            uintptr
	RemovePropertyChangedEventHandler         uintptr
	AddStructureChangedEventHandler           uintptr
	RemoveStructureChangedEventHandler        uintptr
	AddFocusChangedEventHandler               uintptr
	RemoveFocusChangedEventHandler            uintptr
	RemoveAllEventHandlers                    uintptr
	IntNativeArrayToSafeArray                 uintptr
	IntSafeArrayToNativeArray                 uintptr
	RectToVariant                             uintptr
	VariantToRect                             uintptr
	SafeArrayToRectNativeArray                uintptr
	CreateProxyFactoryEntry                   uintptr
	GetProxyFactoryMapping                    uintptr
	GetPropertyProgrammaticName               uintptr
	GetPatternProgrammaticName                uintptr
	PollForPotentialSupportedPatterns         uintptr
	PollForPotentialSupportedProperties       uintptr
	CheckNotSupported                         uintptr
	GetReservedNotSupportedValue              uintptr
	GetReservedMixedAttributeValue            uintptr
	ElementFromIAccessible                    uintptr
	ElementFromIAccessibleBuildCache          uintptr
}

func (v *iUIAutomation) vtbl() *iUIAutomationVtbl {
	return (*iUIAutomationVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomation) rootElement() (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetRootElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

func (v *iUIAutomation) elementFromHandle(hwnd uintptr) (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().ElementFromHandle,
		uintptr(unsafe.Pointer(v)), hwnd, uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

func (v *iUIAutomation) focusedElement() (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetFocusedElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

func (v *iUIAutomation) controlViewWalker() (*iUIAutomationTreeWalker, error) {
	var walker *iUIAutomationTreeWalker
	hr, _, _ := syscall.SyscallN(v.vtbl().GetControlViewWalker,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&walker)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return walker, nil
}

func (v *iUIAutomation) trueCondition() (*iUIAutomationCondition, error) {
	var cond *iUIAutomationCondition
	hr, _, _ := syscall.SyscallN(v.vtbl().CreateTrueCondition,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&cond)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return cond, nil
}

// propertyCondition 创建属性条件，VARIANT 在 amd64 上按指针传入
func (v *iUIAutomation) propertyCondition(propID int32, value *ole.VARIANT) (*iUIAutomationCondition, error) {
	var cond *iUIAutomationCondition
	hr, _, _ := syscall.SyscallN(v.vtbl().CreatePropertyCondition,
		uintptr(unsafe.Pointer(v)), uintptr(propID),
		uintptr(unsafe.Pointer(value)), uintptr(unsafe.Pointer(&cond)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return cond, nil
}

// stringCondition 按字符串属性创建条件
func (v *iUIAutomation) stringCondition(propID int32, value string) (*iUIAutomationCondition, error) {
	bstr := ole.SysAllocStringLen(value)
	if bstr == nil {
		return nil, ole.NewError(ole.E_OUTOFMEMORY)
	}
	defer ole.SysFreeString(bstr)
	variant := ole.NewVariant(ole.VT_BSTR, int64(uintptr(unsafe.Pointer(bstr))))
	return v.propertyCondition(propID, &variant)
}

// intCondition 按整型属性创建条件
func (v *iUIAutomation) intCondition(propID int32, value int32) (*iUIAutomationCondition, error) {
	variant := ole.NewVariant(ole.VT_I4, int64(value))
	return v.propertyCondition(propID, &variant)
}

type iUIAutomationElement struct {
	ole.IUnknown
}

type iUIAutomationElementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                        uintptr
	GetRuntimeId                    uintptr
	FindFirst                       uintptr
	FindAll                         uintptr
	FindFirstBuildCache             uintptr
	FindAllBuildCache               uintptr
	BuildUpdatedCache               uintptr
	GetCurrentPropertyValue         uintptr
	GetCurrentPropertyValueEx       uintptr
	GetCachedPropertyValue          uintptr
	GetCachedPropertyValueEx        uintptr
	GetCurrentPatternAs             uintptr
	GetCachedPatternAs              uintptr
	GetCurrentPattern               uintptr
	GetCachedPattern                uintptr
	GetCachedParent                 uintptr
	GetCachedChildren               uintptr
	GetCurrentProcessId             uintptr
	GetCurrentControlType           uintptr
	GetCurrentLocalizedControlType  uintptr
	GetCurrentName                  uintptr
	GetCurrentAcceleratorKey        uintptr
	GetCurrentAccessKey             uintptr
	GetCurrentHasKeyboardFocus      uintptr
	GetCurrentIsKeyboardFocusable   uintptr
	GetCurrentIsEnabled             uintptr
	GetCurrentAutomationId          uintptr
	GetCurrentClassName             uintptr
	GetCurrentHelpText              uintptr
	GetCurrentCulture               uintptr
	GetCurrentIsControlElement      uintptr
	GetCurrentIsContentElement      uintptr
	GetCurrentIsPassword            uintptr
	GetCurrentNativeWindowHandle    uintptr
	GetCurrentItemType              uintptr
	GetCurrentIsOffscreen           uintptr
	GetCurrentOrientation           uintptr
	GetCurrentFrameworkId           uintptr
	GetCurrentIsRequiredForForm     uintptr
	GetCurrentItemStatus            uintptr
	GetCurrentBoundingRectangle     uintptr
	GetCurrentLabeledBy             uintptr
	GetCurrentAriaRole              uintptr
	GetCurrentAriaProperties        uintptr
	GetCurrentIsDataValidForForm    uintptr
	GetCurrentControllerFor         uintptr
	GetCurrentDescribedBy           uintptr
	GetCurrentFlowsTo               uintptr
	GetCurrentProviderDescription   uintptr
	GetCachedProcessId              uintptr
	GetCachedControlType            uintptr
	GetCachedLocalizedControlType   uintptr
	GetCachedName                   uintptr
	GetCachedAcceleratorKey         uintptr
	GetCachedAccessKey              uintptr
	GetCachedHasKeyboardFocus       uintptr
	GetCachedIsKeyboardFocusable    uintptr
	GetCachedIsEnabled              uintptr
	GetCachedAutomationId           uintptr
	GetCachedClassName              uintptr
	GetCachedHelpText               uintptr
	GetCachedCulture                uintptr
	GetCachedIsControlElement       uintptr
	GetCachedIsContentElement       uintptr
	GetCachedIsPassword             uintptr
	GetCachedNativeWindowHandle     uintptr
	GetCachedItemType               uintptr
	GetCachedIsOffscreen            uintptr
	GetCachedOrientation            uintptr
	GetCachedFrameworkId            uintptr
	GetCachedIsRequiredForForm      uintptr
	GetCachedItemStatus             uintptr
	GetCachedBoundingRectangle      uintptr
	GetCachedLabeledBy              uintptr
	GetCachedAriaRole               uintptr
	GetCachedAriaProperties         uintptr
	GetCachedIsDataValidForForm     uintptr
	GetCachedControllerFor          uintptr
	GetCachedDescribedBy            uintptr
	GetCachedFlowsTo                uintptr
	GetCachedProviderDescription    uintptr
	GetClickablePoint               uintptr
}

func (v *iUIAutomationElement) vtbl() *iUIAutomationElementVtbl {
	return (*iUIAutomationElementVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationElement) setFocus() error {
	hr, _, _ := syscall.SyscallN(v.vtbl().SetFocus, uintptr(unsafe.Pointer(v)))
	return hresult(hr)
}

func (v *iUIAutomationElement) findFirst(scope int32, cond *iUIAutomationCondition) (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().FindFirst,
		uintptr(unsafe.Pointer(v)), uintptr(scope),
		uintptr(unsafe.Pointer(cond)), uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

func (v *iUIAutomationElement) findAll(scope int32, cond *iUIAutomationCondition) (*iUIAutomationElementArray, error) {
	var arr *iUIAutomationElementArray
	hr, _, _ := syscall.SyscallN(v.vtbl().FindAll,
		uintptr(unsafe.Pointer(v)), uintptr(scope),
		uintptr(unsafe.Pointer(cond)), uintptr(unsafe.Pointer(&arr)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return arr, nil
}

func (v *iUIAutomationElement) propertyValue(propID int32) (*ole.VARIANT, error) {
	variant := &ole.VARIANT{}
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentPropertyValue,
		uintptr(unsafe.Pointer(v)), uintptr(propID),
		uintptr(unsafe.Pointer(variant)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return variant, nil
}

// pattern 获取指定控件模式接口，元素不支持时返回 nil
func (v *iUIAutomationElement) pattern(patternID int32) (*ole.IUnknown, error) {
	var unk *ole.IUnknown
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentPattern,
		uintptr(unsafe.Pointer(v)), uintptr(patternID),
		uintptr(unsafe.Pointer(&unk)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return unk, nil
}

func (v *iUIAutomationElement) controlTypeID() (int32, error) {
	var id int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentControlType,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&id)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	return id, nil
}

func (v *iUIAutomationElement) processID() (int32, error) {
	var pid int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentProcessId,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&pid)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	return pid, nil
}

func (v *iUIAutomationElement) name() (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentName,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	return bstrOut(bstr), nil
}

func (v *iUIAutomationElement) automationID() (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentAutomationId,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	return bstrOut(bstr), nil
}

func (v *iUIAutomationElement) className() (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentClassName,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	return bstrOut(bstr), nil
}

func (v *iUIAutomationElement) isEnabled() (bool, error) {
	var val int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentIsEnabled,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&val)))
	if err := hresult(hr); err != nil {
		return false, err
	}
	return val != 0, nil
}

func (v *iUIAutomationElement) isOffscreen() (bool, error) {
	var val int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentIsOffscreen,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&val)))
	if err := hresult(hr); err != nil {
		return true, err
	}
	return val != 0, nil
}

func (v *iUIAutomationElement) hasKeyboardFocus() (bool, error) {
	var val int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentHasKeyboardFocus,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&val)))
	if err := hresult(hr); err != nil {
		return false, err
	}
	return val != 0, nil
}

func (v *iUIAutomationElement) isKeyboardFocusable() (bool, error) {
	var val int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentIsKeyboardFocusable,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&val)))
	if err := hresult(hr); err != nil {
		return false, err
	}
	return val != 0, nil
}

func (v *iUIAutomationElement) nativeWindowHandle() (uintptr, error) {
	var hwnd uintptr
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentNativeWindowHandle,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&hwnd)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	return hwnd, nil
}

func (v *iUIAutomationElement) boundingRectangle() (Rect, error) {
	var rect Rect
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentBoundingRectangle,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&rect)))
	if err := hresult(hr); err != nil {
		return Rect{}, err
	}
	return rect, nil
}

type iUIAutomationCondition struct {
	ole.IUnknown
}

type iUIAutomationElementArray struct {
	ole.IUnknown
}

type iUIAutomationElementArrayVtbl struct {
	ole.IUnknownVtbl
	GetLength  uintptr
	GetElement uintptr
}

func (v *iUIAutomationElementArray) vtbl() *iUIAutomationElementArrayVtbl {
	return (*iUIAutomationElementArrayVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationElementArray) length() (int32, error) {
	var n int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetLength,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&n)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	return n, nil
}

func (v *iUIAutomationElementArray) element(index int32) (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetElement,
		uintptr(unsafe.Pointer(v)), uintptr(index), uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

type iUIAutomationTreeWalker struct {
	ole.IUnknown
}

type iUIAutomationTreeWalkerVtbl struct {
	ole.IUnknownVtbl
	GetParentElement                    uintptr
	GetFirstChildElement                uintptr
	GetLastChildElement                 uintptr
	GetNextSiblingElement               uintptr
	GetPreviousSiblingElement           uintptr
	NormalizeElement                    uintptr
	GetParentElementBuildCache          uintptr
	GetFirstChildElementBuildCache      uintptr
	GetLastChildElementBuildCache       uintptr
	GetNextSiblingElementBuildCache     uintptr
	GetPreviousSiblingElementBuildCache uintptr
	NormalizeElementBuildCache          uintptr
	GetCondition                        uintptr
}

func (v *iUIAutomationTreeWalker) vtbl() *iUIAutomationTreeWalkerVtbl {
	return (*iUIAutomationTreeWalkerVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationTreeWalker) parent(el *iUIAutomationElement) (*iUIAutomationElement, error) {
	var out *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetParentElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(el)),
		uintptr(unsafe.Pointer(&out)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return out, nil
}

func (v *iUIAutomationTreeWalker) firstChild(el *iUIAutomationElement) (*iUIAutomationElement, error) {
	var out *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetFirstChildElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(el)),
		uintptr(unsafe.Pointer(&out)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return out, nil
}

func (v *iUIAutomationTreeWalker) nextSibling(el *iUIAutomationElement) (*iUIAutomationElement, error) {
	var out *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetNextSiblingElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(el)),
		uintptr(unsafe.Pointer(&out)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return out, nil
}

type iUIAutomationInvokePattern struct {
	ole.IUnknown
}

type iUIAutomationInvokePatternVtbl struct {
	ole.IUnknownVtbl
	Invoke uintptr
}

func (v *iUIAutomationInvokePattern) invoke() error {
	vtbl := (*iUIAutomationInvokePatternVtbl)(unsafe.Pointer(v.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.Invoke, uintptr(unsafe.Pointer(v)))
	return hresult(hr)
}

type iUIAutomationValuePattern struct {
	ole.IUnknown
}

type iUIAutomationValuePatternVtbl struct {
	ole.IUnknownVtbl
	SetValue             uintptr
	GetCurrentValue      uintptr
	GetCurrentIsReadOnly uintptr
	GetCachedValue       uintptr
	GetCachedIsReadOnly  uintptr
}

func (v *iUIAutomationValuePattern) vtbl() *iUIAutomationValuePatternVtbl {
	return (*iUIAutomationValuePatternVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationValuePattern) value() (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentValue,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	return bstrOut(bstr), nil
}

func (v *iUIAutomationValuePattern) isReadOnly() (bool, error) {
	var val int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCurrentIsReadOnly,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&val)))
	if err := hresult(hr); err != nil {
		return true, err
	}
	return val != 0, nil
}

type iUIAutomationTextPattern struct {
	ole.IUnknown
}

type iUIAutomationTextPatternVtbl struct {
	ole.IUnknownVtbl
	RangeFromPoint            uintptr
	RangeFromChild            uintptr
	GetSelection              uintptr
	GetVisibleRanges          uintptr
	GetDocumentRange          uintptr
	GetSupportedTextSelection uintptr
}

func (v *iUIAutomationTextPattern) vtbl() *iUIAutomationTextPatternVtbl {
	return (*iUIAutomationTextPatternVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationTextPattern) documentRange() (*iUIAutomationTextRange, error) {
	var r *iUIAutomationTextRange
	hr, _, _ := syscall.SyscallN(v.vtbl().GetDocumentRange,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&r)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return r, nil
}

func (v *iUIAutomationTextPattern) selection() (*iUIAutomationTextRangeArray, error) {
	var arr *iUIAutomationTextRangeArray
	hr, _, _ := syscall.SyscallN(v.vtbl().GetSelection,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&arr)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return arr, nil
}

type iUIAutomationTextRange struct {
	ole.IUnknown
}

type iUIAutomationTextRangeVtbl struct {
	ole.IUnknownVtbl
	Clone                 uintptr
	Compare               uintptr
	CompareEndpoints      uintptr
	ExpandToEnclosingUnit uintptr
	FindAttribute         uintptr
	FindText              uintptr
	GetAttributeValue     uintptr
	GetBoundingRectangles uintptr
	GetEnclosingElement   uintptr
	GetText               uintptr
	Move                  uintptr
	MoveEndpointByUnit    uintptr
	MoveEndpointByRange   uintptr
	Select                uintptr
	AddToSelection        uintptr
	RemoveFromSelection   uintptr
	ScrollIntoView        uintptr
	GetChildren           uintptr
}

func (v *iUIAutomationTextRange) vtbl() *iUIAutomationTextRangeVtbl {
	return (*iUIAutomationTextRangeVtbl)(unsafe.Pointer(v.RawVTable))
}

// text 读取范围内文本，maxLength 为 -1 时不限长度
func (v *iUIAutomationTextRange) text(maxLength int32) (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(v.vtbl().GetText,
		uintptr(unsafe.Pointer(v)), uintptr(maxLength),
		uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	return bstrOut(bstr), nil
}

func (v *iUIAutomationTextRange) selectRange() error {
	hr, _, _ := syscall.SyscallN(v.vtbl().Select, uintptr(unsafe.Pointer(v)))
	return hresult(hr)
}

func (v *iUIAutomationTextRange) enclosingElement() (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(v.vtbl().GetEnclosingElement,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return el, nil
}

type iUIAutomationTextRangeArray struct {
	ole.IUnknown
}

type iUIAutomationTextRangeArrayVtbl struct {
	ole.IUnknownVtbl
	GetLength  uintptr
	GetElement uintptr
}

func (v *iUIAutomationTextRangeArray) vtbl() *iUIAutomationTextRangeArrayVtbl {
	return (*iUIAutomationTextRangeArrayVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iUIAutomationTextRangeArray) length() (int32, error) {
	var n int32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetLength,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&n)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	return n, nil
}

func (v *iUIAutomationTextRangeArray) element(index int32) (*iUIAutomationTextRange, error) {
	var r *iUIAutomationTextRange
	hr, _, _ := syscall.SyscallN(v.vtbl().GetElement,
		uintptr(unsafe.Pointer(v)), uintptr(index), uintptr(unsafe.Pointer(&r)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return r, nil
}

func releaseElement(el *iUIAutomationElement) {
	if el != nil {
		el.Release()
	}
}

func releaseCondition(cond *iUIAutomationCondition) {
	if cond != nil {
		cond.Release()
	}
}
