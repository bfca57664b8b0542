// Package script 运行用户的 Python 自动化脚本。
// 脚本通过环境变量 UIX_SERVER_URL 和 UIX_TOKEN 拿到远程服务的
// 连接信息, 用任意 WebSocket 客户端驱动本机自动化
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
	"github.com/PaysanCorrezien/ui-interaction/pkg/cmdutil"
	"github.com/PaysanCorrezien/ui-interaction/pkg/python"
)

// Options 脚本运行选项
type Options struct {
	Dir       string    // 脚本目录
	ServerURL string    // 远程服务地址, 以 UIX_SERVER_URL 注入脚本环境
	Token     string    // 服务令牌, 以 UIX_TOKEN 注入脚本环境
	Python    string    // 解释器路径, 为空时自动检测
	Output    io.Writer // 脚本输出目标, 为空时写到标准输出
}

// Runner Python 脚本运行器
type Runner struct {
	dir       string
	serverURL string
	token     string
	python    string
	out       io.Writer
}

// NewRunner 创建脚本运行器, 未指定解释器时自动检测 Python 3
func NewRunner(opts Options) (*Runner, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("脚本目录为空")
	}

	pythonPath := opts.Python
	if pythonPath == "" {
		info := python.DetectPython()
		if !info.Available {
			return nil, fmt.Errorf("未检测到可用的 Python 3 环境")
		}
		pythonPath = info.Path
		logger.Debug("检测到 Python %s: %s", info.Version, info.Path)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &Runner{
		dir:       opts.Dir,
		serverURL: opts.ServerURL,
		token:     opts.Token,
		python:    pythonPath,
		out:       out,
	}, nil
}

// Scripts 列出脚本目录下的 *.py 文件, 按文件名排序
func (r *Runner) Scripts() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("读取脚本目录失败: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".py") {
			scripts = append(scripts, filepath.Join(r.dir, entry.Name()))
		}
	}
	return scripts, nil
}

// Run 运行单个脚本, 输出实时转发, 非零退出码视为失败
func (r *Runner) Run(ctx context.Context, path string) error {
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.python, path)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdout = r.out
	cmd.Stderr = r.out
	cmd.Env = append(os.Environ(),
		"UIX_SERVER_URL="+r.serverURL,
		"UIX_TOKEN="+r.token,
	)
	cmdutil.HideWindow(cmd)

	err := cmd.Run()
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		logger.LogEvent("script", false, elapsed, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		return fmt.Errorf("脚本 %s 运行失败: %w", filepath.Base(path), err)
	}
	logger.LogEvent("script", true, elapsed, filepath.Base(path))
	return nil
}

// RunAll 依次运行目录下的所有脚本, 任一脚本失败即中止
func (r *Runner) RunAll(ctx context.Context) error {
	scripts, err := r.Scripts()
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return fmt.Errorf("目录 %s 下没有 Python 脚本", r.dir)
	}

	for _, path := range scripts {
		fmt.Fprintf(r.out, "Running %s\n", path)
		if err := r.Run(ctx, path); err != nil {
			return err
		}
	}
	return nil
}
