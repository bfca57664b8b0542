package uia

import (
	"encoding/json"
	"fmt"
	"strings"
)

type queryKind int

const (
	queryByName queryKind = iota
	queryByType
	queryByProperty
	queryAnd
	queryOr
	queryNot
	queryHasChild
	queryHasDescendant
	queryParent
	queryAncestor
)

// Query 元素查询条件，由基础条件与组合器构成。
// Parent / Ancestor 轴只能在窗口子树查找中求值，纯匹配时恒为假。
type Query struct {
	kind       queryKind
	name       string
	ct         ControlType
	key, value string
	subs       []*Query
}

// ByName 按元素名称精确匹配
func ByName(name string) *Query {
	return &Query{kind: queryByName, name: name}
}

// ByType 按控件类型匹配
func ByType(ct ControlType) *Query {
	return &Query{kind: queryByType, ct: ct}
}

// ByProperty 按属性键值匹配
func ByProperty(key, value string) *Query {
	return &Query{kind: queryByProperty, key: key, value: value}
}

// And 所有子条件都满足
func And(qs ...*Query) *Query {
	return &Query{kind: queryAnd, subs: qs}
}

// Or 任一子条件满足
func Or(qs ...*Query) *Query {
	return &Query{kind: queryOr, subs: qs}
}

// Not 子条件不满足
func Not(q *Query) *Query {
	return &Query{kind: queryNot, subs: []*Query{q}}
}

// HasChild 任一直接子元素满足子条件
func HasChild(q *Query) *Query {
	return &Query{kind: queryHasChild, subs: []*Query{q}}
}

// HasDescendant 任一后代元素满足子条件
func HasDescendant(q *Query) *Query {
	return &Query{kind: queryHasDescendant, subs: []*Query{q}}
}

// ParentMatches 父元素满足子条件（仅窗口查找时求值）
func ParentMatches(q *Query) *Query {
	return &Query{kind: queryParent, subs: []*Query{q}}
}

// AncestorMatches 任一祖先元素满足子条件（仅窗口查找时求值）
func AncestorMatches(q *Query) *Query {
	return &Query{kind: queryAncestor, subs: []*Query{q}}
}

// Matches 判断单个元素是否满足查询条件。
// 属性读取失败按未匹配处理，不向上传播。
func (q *Query) Matches(el Element) bool {
	if q == nil || el == nil {
		return false
	}
	switch q.kind {
	case queryByName:
		name, err := el.Name()
		return err == nil && name == q.name
	case queryByType:
		ct, err := el.ControlType()
		return err == nil && ct == q.ct
	case queryByProperty:
		props, err := el.Properties()
		return err == nil && props[q.key] == q.value
	case queryAnd:
		for _, sub := range q.subs {
			if !sub.Matches(el) {
				return false
			}
		}
		return true
	case queryOr:
		for _, sub := range q.subs {
			if sub.Matches(el) {
				return true
			}
		}
		return false
	case queryNot:
		return len(q.subs) == 1 && !q.subs[0].Matches(el)
	case queryHasChild:
		if len(q.subs) != 1 {
			return false
		}
		children, err := el.Children()
		if err != nil {
			return false
		}
		for _, child := range children {
			if q.subs[0].Matches(child) {
				return true
			}
		}
		return false
	case queryHasDescendant:
		if len(q.subs) != 1 {
			return false
		}
		return anyDescendantMatches(el, q.subs[0])
	default:
		return false
	}
}

func anyDescendantMatches(el Element, q *Query) bool {
	children, err := el.Children()
	if err != nil {
		return false
	}
	for _, child := range children {
		if q.Matches(child) || anyDescendantMatches(child, q) {
			return true
		}
	}
	return false
}

// FindAll 从 root 开始深度优先收集所有满足条件的元素（含 root 本身）。
// 读取失败的分支跳过，不中断整体遍历。
func (q *Query) FindAll(root Element) []Element {
	if q == nil || root == nil {
		return nil
	}
	var found []Element
	if q.Matches(root) {
		found = append(found, root)
	}
	children, err := root.Children()
	if err != nil {
		return found
	}
	for _, child := range children {
		found = append(found, q.FindAll(child)...)
	}
	return found
}

// String 查询条件的可读形式，用于日志
func (q *Query) String() string {
	if q == nil {
		return "<nil>"
	}
	switch q.kind {
	case queryByName:
		return fmt.Sprintf("by_name(%s)", q.name)
	case queryByType:
		return fmt.Sprintf("by_type(%s)", q.ct)
	case queryByProperty:
		return fmt.Sprintf("by_property(%s=%s)", q.key, q.value)
	case queryAnd:
		return "and(" + joinQueries(q.subs) + ")"
	case queryOr:
		return "or(" + joinQueries(q.subs) + ")"
	case queryNot:
		return "not(" + joinQueries(q.subs) + ")"
	case queryHasChild:
		return "has_child(" + joinQueries(q.subs) + ")"
	case queryHasDescendant:
		return "has_descendant(" + joinQueries(q.subs) + ")"
	case queryParent:
		return "parent(" + joinQueries(q.subs) + ")"
	case queryAncestor:
		return "ancestor(" + joinQueries(q.subs) + ")"
	default:
		return "<unknown>"
	}
}

func joinQueries(qs []*Query) string {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, q.String())
	}
	return strings.Join(parts, ", ")
}

type queryProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type queryJSON struct {
	ByName        *string        `json:"by_name,omitempty"`
	ByType        *string        `json:"by_type,omitempty"`
	ByProperty    *queryProperty `json:"by_property,omitempty"`
	And           []*Query       `json:"and,omitempty"`
	Or            []*Query       `json:"or,omitempty"`
	Not           *Query         `json:"not,omitempty"`
	HasChild      *Query         `json:"has_child,omitempty"`
	HasDescendant *Query         `json:"has_descendant,omitempty"`
	Parent        *Query         `json:"parent,omitempty"`
	Ancestor      *Query         `json:"ancestor,omitempty"`
}

// MarshalJSON 序列化为单键对象形式，如 {"by_name":"Login"}
func (q *Query) MarshalJSON() ([]byte, error) {
	var out queryJSON
	switch q.kind {
	case queryByName:
		out.ByName = &q.name
	case queryByType:
		name := q.ct.String()
		out.ByType = &name
	case queryByProperty:
		out.ByProperty = &queryProperty{Key: q.key, Value: q.value}
	case queryAnd:
		out.And = q.subs
	case queryOr:
		out.Or = q.subs
	case queryNot:
		out.Not = q.subs[0]
	case queryHasChild:
		out.HasChild = q.subs[0]
	case queryHasDescendant:
		out.HasDescendant = q.subs[0]
	case queryParent:
		out.Parent = q.subs[0]
	case queryAncestor:
		out.Ancestor = q.subs[0]
	default:
		return nil, fmt.Errorf("未知的查询类型: %d", q.kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON 从单键对象形式反序列化
func (q *Query) UnmarshalJSON(data []byte) error {
	var in queryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("解析查询条件失败: %w", err)
	}
	switch {
	case in.ByName != nil:
		*q = Query{kind: queryByName, name: *in.ByName}
	case in.ByType != nil:
		*q = Query{kind: queryByType, ct: ControlTypeFromName(*in.ByType)}
	case in.ByProperty != nil:
		*q = Query{kind: queryByProperty, key: in.ByProperty.Key, value: in.ByProperty.Value}
	case in.And != nil:
		*q = Query{kind: queryAnd, subs: in.And}
	case in.Or != nil:
		*q = Query{kind: queryOr, subs: in.Or}
	case in.Not != nil:
		*q = Query{kind: queryNot, subs: []*Query{in.Not}}
	case in.HasChild != nil:
		*q = Query{kind: queryHasChild, subs: []*Query{in.HasChild}}
	case in.HasDescendant != nil:
		*q = Query{kind: queryHasDescendant, subs: []*Query{in.HasDescendant}}
	case in.Parent != nil:
		*q = Query{kind: queryParent, subs: []*Query{in.Parent}}
	case in.Ancestor != nil:
		*q = Query{kind: queryAncestor, subs: []*Query{in.Ancestor}}
	default:
		return fmt.Errorf("查询条件为空")
	}
	return nil
}
