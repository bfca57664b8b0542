package uia

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TreeNode 控件树中的一个节点
type TreeNode struct {
	Name        string            `json:"name"`
	ControlType ControlType       `json:"control_type"`
	Properties  map[string]string `json:"properties,omitempty"`
	Children    []*TreeNode       `json:"children,omitempty"`
	Bounds      *Rect             `json:"bounds,omitempty"`
	IsEnabled   bool              `json:"is_enabled"`
	IsVisible   bool              `json:"is_visible"`
}

// Tree 窗口控件树快照
type Tree struct {
	Root        *TreeNode `json:"root"`
	Timestamp   int64     `json:"timestamp"`
	WindowTitle string    `json:"window_title"`
	WindowClass string    `json:"window_class"`
}

// TreeOptions 控件树构建选项。
// 深层窗口的完整子树可能有上万节点，默认值刻意保守。
type TreeOptions struct {
	// MaxDepth 最大递归深度，根节点为 0 层
	MaxDepth int
	// RootChildLimit 根节点保留的最大子节点数
	RootChildLimit int
	// ChildLimit 其余节点保留的最大子节点数
	ChildLimit int
}

// DefaultTreeOptions 默认构建选项
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{MaxDepth: 3, RootChildLimit: 50, ChildLimit: 20}
}

// BuildTree 从根元素构建控件树快照
func BuildTree(root Element, title, class string, opts TreeOptions) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("根元素为空")
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultTreeOptions().MaxDepth
	}
	if opts.RootChildLimit <= 0 {
		opts.RootChildLimit = DefaultTreeOptions().RootChildLimit
	}
	if opts.ChildLimit <= 0 {
		opts.ChildLimit = DefaultTreeOptions().ChildLimit
	}
	return &Tree{
		Root:        buildTreeNode(root, 0, opts),
		Timestamp:   time.Now().Unix(),
		WindowTitle: title,
		WindowClass: class,
	}, nil
}

func buildTreeNode(el Element, depth int, opts TreeOptions) *TreeNode {
	node := &TreeNode{}
	node.Name, _ = el.Name()
	if ct, err := el.ControlType(); err == nil {
		node.ControlType = ct
	} else {
		node.ControlType = CustomControl
	}
	if props, err := el.Properties(); err == nil {
		node.Properties = props
	}
	node.Bounds, _ = el.Bounds()
	if enabled, err := el.IsEnabled(); err == nil {
		node.IsEnabled = enabled
	}
	if visible, err := el.IsVisible(); err == nil {
		node.IsVisible = visible
	}

	if depth >= opts.MaxDepth {
		return node
	}
	children, err := el.Children()
	if err != nil {
		return node
	}
	limit := opts.ChildLimit
	if depth == 0 {
		limit = opts.RootChildLimit
	}
	if len(children) > limit {
		children = children[:limit]
	}
	for _, child := range children {
		node.Children = append(node.Children, buildTreeNode(child, depth+1, opts))
	}
	return node
}

// NodeCount 树中节点总数
func (t *Tree) NodeCount() int {
	return countNodes(t.Root)
}

func countNodes(n *TreeNode) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += countNodes(child)
	}
	return count
}

// Walk 深度优先遍历树节点，fn 返回 false 时停止下探该分支
func (t *Tree) Walk(fn func(node *TreeNode, depth int) bool) {
	walkNode(t.Root, 0, fn)
}

func walkNode(n *TreeNode, depth int, fn func(*TreeNode, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walkNode(child, depth+1, fn)
	}
}

// Dump 按缩进层级输出控件树，用于命令行展示
func (t *Tree) Dump(w io.Writer) {
	fmt.Fprintf(w, "Window: %s [%s]\n", t.WindowTitle, t.WindowClass)
	t.Walk(func(node *TreeNode, depth int) bool {
		fmt.Fprintf(w, "%sElement: %s (Type: %s)\n",
			strings.Repeat("  ", depth+1), node.Name, node.ControlType)
		return true
	})
}
