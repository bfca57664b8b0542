package uia

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func demoFixture() (*fakeAutomation, *fakeWindow) {
	win := &fakeWindow{
		title: "Notepad",
		class: "Notepad",
		root:  newFakeElement("Notepad", WindowControl),
	}
	auto := &fakeAutomation{
		win:    win,
		byName: map[string]*fakeElement{},
	}
	return auto, win
}

func TestRunDemoPrintsWindowTitle(t *testing.T) {
	auto, _ := demoFixture()
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}
	if !strings.Contains(out.String(), "Focused window: Notepad") {
		t.Errorf("输出应包含窗口标题行, 实际输出:\n%s", out.String())
	}
}

func TestRunDemoLoginFound(t *testing.T) {
	auto, _ := demoFixture()
	login := newFakeElement("Login", ButtonControl)
	auto.byName["Login"] = login
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}
	if !strings.Contains(out.String(), "Found 'Login' control") {
		t.Errorf("输出应包含找到提示, 实际输出:\n%s", out.String())
	}
	if strings.Contains(out.String(), "No 'Login' control found") {
		t.Error("找到控件时不应再输出未找到提示")
	}
	if login.clickCount != 1 {
		t.Errorf("Login 控件应被点击恰好一次, 实际 %d 次", login.clickCount)
	}
}

func TestRunDemoLoginMissing(t *testing.T) {
	auto, _ := demoFixture()
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}
	if !strings.Contains(out.String(), "No 'Login' control found") {
		t.Errorf("输出应包含未找到提示, 实际输出:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Found 'Login' control") {
		t.Error("未找到控件时不应输出找到提示")
	}
}

func TestRunDemoSearchFailureAborts(t *testing.T) {
	auto, _ := demoFixture()
	auto.findErr = errors.New("平台接口故障")
	login := newFakeElement("Login", ButtonControl)
	auto.byName["Login"] = login
	var out bytes.Buffer

	err := RunDemo(auto, &out)
	if err == nil {
		t.Fatal("查找失败时演示流程应返回错误")
	}
	if login.clickCount != 0 {
		t.Errorf("查找失败时不应点击, 实际点击 %d 次", login.clickCount)
	}
	// 查找失败不等于未命中，不应输出未找到提示
	if strings.Contains(out.String(), "No 'Login' control found") {
		t.Error("查找失败时不应输出未找到提示")
	}
}

func TestRunDemoNoFocusedElement(t *testing.T) {
	auto, _ := demoFixture()
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("没有焦点元素时演示流程不应失败: %v", err)
	}
	if strings.Contains(out.String(), "Focused element:") {
		t.Errorf("没有焦点元素时不应输出焦点行, 实际输出:\n%s", out.String())
	}
}

func TestRunDemoFocusedEdit(t *testing.T) {
	auto, win := demoFixture()
	edit := newFakeElement("SearchBox", EditControl)
	win.focused = edit
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}
	if !strings.Contains(out.String(), "Focused element: SearchBox (Edit)") {
		t.Errorf("输出应包含焦点元素行, 实际输出:\n%s", out.String())
	}
	if len(edit.setTextCalls) != 1 {
		t.Fatalf("编辑框应被写入恰好一次, 实际 %d 次", len(edit.setTextCalls))
	}
	if edit.setTextCalls[0] != "Hello from Python!" {
		t.Errorf("写入内容应为 Hello from Python!, 实际为 %s", edit.setTextCalls[0])
	}
}

func TestRunDemoFocusedNonEdit(t *testing.T) {
	auto, win := demoFixture()
	button := newFakeElement("OK", ButtonControl)
	win.focused = button
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}
	if !strings.Contains(out.String(), "Focused element: OK (Button)") {
		t.Errorf("输出应包含焦点元素行, 实际输出:\n%s", out.String())
	}
	if len(button.setTextCalls) != 0 {
		t.Errorf("非编辑框不应被写入, 实际写入 %d 次", len(button.setTextCalls))
	}
}

func TestRunDemoNoActiveWindow(t *testing.T) {
	auto := &fakeAutomation{byName: map[string]*fakeElement{}}
	var out bytes.Buffer

	err := RunDemo(auto, &out)
	if err == nil {
		t.Fatal("没有前台窗口时演示流程应返回错误")
	}
	if !errors.Is(err, ErrNoActiveWindow) {
		t.Errorf("错误应包装 ErrNoActiveWindow, 实际为 %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("没有前台窗口时不应有任何输出, 实际输出:\n%s", out.String())
	}
}

func TestRunDemoFullFlow(t *testing.T) {
	auto, win := demoFixture()
	login := newFakeElement("Login", ButtonControl)
	auto.byName["Login"] = login
	edit := newFakeElement("UserName", EditControl)
	win.focused = edit
	var out bytes.Buffer

	if err := RunDemo(auto, &out); err != nil {
		t.Fatalf("演示流程不应失败: %v", err)
	}

	// 三段输出按顺序出现
	text := out.String()
	winIdx := strings.Index(text, "Focused window: Notepad")
	loginIdx := strings.Index(text, "Found 'Login' control")
	focusIdx := strings.Index(text, "Focused element: UserName (Edit)")
	if winIdx < 0 || loginIdx < 0 || focusIdx < 0 {
		t.Fatalf("输出缺少关键行:\n%s", text)
	}
	if !(winIdx < loginIdx && loginIdx < focusIdx) {
		t.Errorf("输出顺序不正确:\n%s", text)
	}
	if login.clickCount != 1 {
		t.Errorf("Login 控件应被点击一次, 实际 %d 次", login.clickCount)
	}
	if len(edit.setTextCalls) != 1 || edit.setTextCalls[0] != "Hello from Python!" {
		t.Errorf("编辑框写入不正确: %v", edit.setTextCalls)
	}
}
