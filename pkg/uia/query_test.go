package uia

import (
	"encoding/json"
	"errors"
	"testing"
)

// 构造一个小型控件树:
// Window "App"
// ├── Pane "Toolbar"
// │   ├── Button "Save"
// │   └── Button "Login"
// └── Edit "UserName"
func queryFixture() *fakeElement {
	root := newFakeElement("App", WindowControl)
	toolbar := newFakeElement("Toolbar", PaneControl)
	toolbar.children = []*fakeElement{
		newFakeElement("Save", ButtonControl),
		newFakeElement("Login", ButtonControl),
	}
	edit := newFakeElement("UserName", EditControl)
	edit.text = "alice"
	root.children = []*fakeElement{toolbar, edit}
	return root
}

func TestQueryMatchesBasic(t *testing.T) {
	el := newFakeElement("Login", ButtonControl)

	if !ByName("Login").Matches(el) {
		t.Error("ByName 应匹配同名元素")
	}
	if ByName("login").Matches(el) {
		t.Error("ByName 区分大小写, 不应匹配")
	}
	if !ByType(ButtonControl).Matches(el) {
		t.Error("ByType 应匹配 Button")
	}
	if ByType(EditControl).Matches(el) {
		t.Error("ByType 不应匹配 Edit")
	}
	if !ByProperty("enabled", "true").Matches(el) {
		t.Error("ByProperty 应匹配 enabled=true")
	}
	el.enabled = false
	if ByProperty("enabled", "true").Matches(el) {
		t.Error("禁用后 ByProperty 不应匹配 enabled=true")
	}
}

func TestQueryMatchesCombinators(t *testing.T) {
	el := newFakeElement("Login", ButtonControl)

	if !And(ByName("Login"), ByType(ButtonControl)).Matches(el) {
		t.Error("And 两个条件都满足时应匹配")
	}
	if And(ByName("Login"), ByType(EditControl)).Matches(el) {
		t.Error("And 有条件不满足时不应匹配")
	}
	if !Or(ByType(EditControl), ByType(ButtonControl)).Matches(el) {
		t.Error("Or 任一条件满足时应匹配")
	}
	if Or(ByType(EditControl), ByType(TextControl)).Matches(el) {
		t.Error("Or 所有条件都不满足时不应匹配")
	}
	if !Not(ByType(EditControl)).Matches(el) {
		t.Error("Not 应在子条件不满足时匹配")
	}
	if Not(ByName("Login")).Matches(el) {
		t.Error("Not 应在子条件满足时不匹配")
	}
	// And 空条件为真, Or 空条件为假
	if !And().Matches(el) {
		t.Error("空 And 应匹配任意元素")
	}
	if Or().Matches(el) {
		t.Error("空 Or 不应匹配任何元素")
	}
}

func TestQueryMatchesAxes(t *testing.T) {
	root := queryFixture()

	if !HasChild(ByType(EditControl)).Matches(root) {
		t.Error("根节点有 Edit 直接子元素, HasChild 应匹配")
	}
	if HasChild(ByName("Login")).Matches(root) {
		t.Error("Login 不是根的直接子元素, HasChild 不应匹配")
	}
	if !HasDescendant(ByName("Login")).Matches(root) {
		t.Error("Login 是根的后代, HasDescendant 应匹配")
	}
	if HasDescendant(ByName("Logout")).Matches(root) {
		t.Error("不存在的后代, HasDescendant 不应匹配")
	}
	// Parent / Ancestor 轴纯匹配时恒为假
	if ParentMatches(ByType(WindowControl)).Matches(root) {
		t.Error("ParentMatches 纯匹配时应恒为假")
	}
	if AncestorMatches(ByType(WindowControl)).Matches(root) {
		t.Error("AncestorMatches 纯匹配时应恒为假")
	}
}

func TestQueryMatchesReadFailure(t *testing.T) {
	el := newFakeElement("Login", ButtonControl)
	el.nameErr = errors.New("读取失败")

	if ByName("Login").Matches(el) {
		t.Error("名称读取失败时应按未匹配处理")
	}
	if !ByType(ButtonControl).Matches(el) {
		t.Error("类型读取正常时 ByType 仍应匹配")
	}
}

func TestQueryFindAll(t *testing.T) {
	root := queryFixture()

	buttons := ByType(ButtonControl).FindAll(root)
	if len(buttons) != 2 {
		t.Fatalf("应找到 2 个 Button, 实际 %d 个", len(buttons))
	}

	login := ByName("Login").FindAll(root)
	if len(login) != 1 {
		t.Fatalf("应找到 1 个 Login, 实际 %d 个", len(login))
	}
	name, _ := login[0].Name()
	if name != "Login" {
		t.Errorf("找到的元素名称应为 Login, 实际为 %s", name)
	}

	// 根节点自身也参与匹配
	windows := ByType(WindowControl).FindAll(root)
	if len(windows) != 1 {
		t.Errorf("应找到根节点自身, 实际 %d 个", len(windows))
	}

	none := ByName("Logout").FindAll(root)
	if len(none) != 0 {
		t.Errorf("不存在的名称应返回空结果, 实际 %d 个", len(none))
	}
}

func TestQueryFindAllSkipsBrokenBranch(t *testing.T) {
	root := queryFixture()
	root.children[0].childrenErr = errors.New("分支读取失败")

	found := ByType(ButtonControl).FindAll(root)
	if len(found) != 0 {
		t.Errorf("损坏分支下的元素不应被找到, 实际 %d 个", len(found))
	}

	// 其他分支不受影响
	edits := ByType(EditControl).FindAll(root)
	if len(edits) != 1 {
		t.Errorf("完好分支应正常遍历, 实际找到 %d 个 Edit", len(edits))
	}
}

func TestQueryJSONRoundTrip(t *testing.T) {
	q := And(
		ByType(EditControl),
		Or(ByName("UserName"), ByProperty("enabled", "true")),
		Not(ByType(ButtonControl)),
	)

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("序列化查询失败: %v", err)
	}
	t.Logf("查询 JSON: %s", data)

	var decoded Query
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("反序列化查询失败: %v", err)
	}

	// 行为等价: 对同一元素给出同样的判定
	el := newFakeElement("UserName", EditControl)
	if q.Matches(el) != decoded.Matches(el) {
		t.Error("反序列化后的查询与原查询行为不一致")
	}
	other := newFakeElement("Save", ButtonControl)
	if q.Matches(other) != decoded.Matches(other) {
		t.Error("反序列化后的查询与原查询行为不一致")
	}
}

func TestQueryJSONByTypeName(t *testing.T) {
	var q Query
	if err := json.Unmarshal([]byte(`{"by_type":"edit"}`), &q); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	el := newFakeElement("x", EditControl)
	if !q.Matches(el) {
		t.Error("by_type 名称不区分大小写, 应匹配 Edit")
	}
}

func TestQueryJSONEmpty(t *testing.T) {
	var q Query
	if err := json.Unmarshal([]byte(`{}`), &q); err == nil {
		t.Error("空查询对象应反序列化失败")
	}
}

func TestQueryString(t *testing.T) {
	q := And(ByName("Login"), ByType(ButtonControl))
	s := q.String()
	if s != "and(by_name(Login), by_type(Button))" {
		t.Errorf("查询描述不正确: %s", s)
	}
}
