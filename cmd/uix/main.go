package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
	"github.com/PaysanCorrezien/ui-interaction/pkg/apps"
	"github.com/PaysanCorrezien/ui-interaction/pkg/config"
	"github.com/PaysanCorrezien/ui-interaction/pkg/permissions"
	"github.com/PaysanCorrezien/ui-interaction/pkg/remote"
	"github.com/PaysanCorrezien/ui-interaction/pkg/screen"
	"github.com/PaysanCorrezien/ui-interaction/pkg/script"
	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 命令行参数
	var (
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
		demoMode    = flag.Bool("demo", false, "运行演示流程 (默认模式)")
		infoMode    = flag.Bool("info", false, "显示前台窗口与焦点元素信息")
		treeMode    = flag.Bool("tree", false, "输出前台窗口的控件树")
		findName    = flag.String("find", "", "按名称查找控件并显示信息")
		extractMode = flag.Bool("extract", false, "提取前台窗口的文本元素")
		appsMode    = flag.Bool("apps", false, "列出正在运行的应用窗口, 可带过滤词参数")
		activateArg = flag.String("activate", "", "按进程名激活应用窗口")
		shotFile    = flag.String("screenshot", "", "截取全屏并保存为 PNG 文件")
		scriptsMode = flag.Bool("scripts", false, "启动本地服务并运行目录下的 Python 脚本")
		serveMode   = flag.Bool("serve", false, "启动远程自动化服务")

		asJSON = flag.Bool("json", false, "以 JSON 格式输出 (配合 -tree/-extract/-apps)")

		listenAddr = flag.String("listen", "", "服务监听地址 (默认 127.0.0.1:7701)")
		token      = flag.String("token", "", "服务认证令牌")
		pythonPath = flag.String("python", "", "Python 解释器路径")
		logLevel   = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
		logToFile  = flag.Bool("log-file", false, "同时把日志写到配置目录下的文件")
		saveCfg    = flag.Bool("save", false, "把本次命令行配置保存到配置文件")
	)

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}
	if *showHelp {
		printHelp()
		return
	}

	cfg := loadConfig(*listenAddr, *token, *pythonPath, *logLevel, *logToFile)
	setupLogger(cfg)

	if *saveCfg {
		if err := config.Save(cfg); err != nil {
			fmt.Printf("[WARN] 保存配置失败: %v\n", err)
		} else {
			fmt.Printf("[INFO] 配置已保存到 %s\n", config.GetDefaultManager().GetConfigFile())
		}
	}

	// macOS 需要辅助功能与屏幕录制授权
	if runtime.GOOS == "darwin" {
		checkDarwinPermissions()
	}

	var err error
	switch {
	case *demoMode:
		err = runDemo()
	case *infoMode:
		err = runInfo()
	case *treeMode:
		err = runTree(cfg, *asJSON)
	case *findName != "":
		err = runFind(*findName)
	case *extractMode:
		err = runExtract(*asJSON)
	case *appsMode:
		err = runApps(flag.Arg(0), *asJSON)
	case *activateArg != "":
		err = runActivate(*activateArg, cfg)
	case *shotFile != "":
		err = runScreenshot(*shotFile)
	case *scriptsMode:
		err = runScripts(flag.Arg(0), cfg)
	case *serveMode:
		err = runServe(cfg)
	default:
		err = runDemo()
	}

	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 加载配置文件, 命令行参数优先级高于配置文件
func loadConfig(listen, token, python, logLevel string, logToFile bool) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("[WARN] 加载配置失败: %v\n", err)
	}
	if listen != "" {
		cfg.ListenAddr = listen
	}
	if token != "" {
		cfg.Token = token
	}
	if python != "" {
		cfg.PythonPath = python
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logToFile {
		cfg.LogToFile = true
	}
	return cfg
}

func setupLogger(cfg *config.Config) {
	log := logger.Default()
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogToFile {
		if err := log.SetFile(true, config.GetDefaultManager().LogFilePath()); err != nil {
			fmt.Printf("[WARN] 打开日志文件失败: %v\n", err)
		}
	}
}

func newSession() (uia.Automation, error) {
	session, err := uia.New()
	if err != nil {
		return nil, fmt.Errorf("创建自动化会话失败: %w", err)
	}
	return session, nil
}

// runDemo 等待用户切换到目标窗口后运行演示流程
func runDemo() error {
	fmt.Println("3 秒后开始演示, 请切换到目标窗口...")
	time.Sleep(3 * time.Second)

	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	return uia.RunDemo(session, os.Stdout)
}

func runInfo() error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	win, err := session.ActiveWindow()
	if err != nil {
		return fmt.Errorf("获取前台窗口失败: %w", err)
	}

	title, _ := win.Title()
	class, _ := win.ClassName()
	fmt.Printf("窗口: %s [%s]\n", title, class)

	if name, err := win.ProcessName(); err == nil {
		pid, _ := win.ProcessID()
		fmt.Printf("进程: %s (PID %d)\n", name, pid)
	}
	if rect, err := win.Rect(); err == nil {
		dpi, _ := win.DPI()
		fmt.Printf("位置: (%d,%d)-(%d,%d) %dx%d DPI %d\n",
			rect.Left, rect.Top, rect.Right, rect.Bottom,
			rect.Width(), rect.Height(), dpi)
	}

	focused, err := win.FocusedElement()
	if err != nil {
		fmt.Println("焦点元素: 无")
		return nil
	}
	name, _ := focused.Name()
	ct, _ := focused.ControlType()
	fmt.Printf("焦点元素: %s (%s)\n", name, ct)
	return nil
}

func runTree(cfg *config.Config, asJSON bool) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	win, err := session.ActiveWindow()
	if err != nil {
		return fmt.Errorf("获取前台窗口失败: %w", err)
	}
	tree, err := win.UITree(uia.TreeOptions{MaxDepth: cfg.TreeMaxDepth})
	if err != nil {
		return fmt.Errorf("构建控件树失败: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化控件树失败: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	tree.Dump(os.Stdout)
	fmt.Printf("共 %d 个节点\n", tree.NodeCount())
	return nil
}

func runFind(name string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	el, err := session.FindByName(name)
	if err != nil {
		return fmt.Errorf("查找 %q 失败: %w", name, err)
	}

	elName, _ := el.Name()
	ct, _ := el.ControlType()
	fmt.Printf("找到控件: %s (%s)\n", elName, ct)
	if props, err := el.Properties(); err == nil {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, props[k])
		}
	}
	return nil
}

func runExtract(asJSON bool) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	win, err := session.ActiveWindow()
	if err != nil {
		return fmt.Errorf("获取前台窗口失败: %w", err)
	}
	infos, err := win.TextElements(uia.DefaultTextOptions())
	if err != nil {
		return fmt.Errorf("提取文本失败: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化提取结果失败: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%s[%s] %s\n", strings.Repeat("  ", info.Depth), info.ControlType, info.Text)
	}
	fmt.Printf("共 %d 个文本元素\n", len(infos))
	return nil
}

func runApps(filter string, asJSON bool) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	mgr := apps.NewManager(session)
	var list []apps.ApplicationInfo
	if filter == "" {
		list, err = mgr.All()
	} else {
		list, err = mgr.FindByName(filter)
		if err != nil {
			list, err = mgr.FindByTitle(filter)
		}
	}
	if err != nil {
		return fmt.Errorf("列举应用失败: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("序列化应用列表失败: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("%-8s %-24s %s\n", "PID", "进程", "窗口标题")
	for _, app := range list {
		fmt.Printf("%-8d %-24s %s\n", app.ProcessID, app.ProcessName, app.MainWindowTitle)
	}
	return nil
}

func runActivate(name string, cfg *config.Config) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	mgr := apps.NewManager(session)
	win, err := mgr.WindowByName(name)
	if err != nil {
		return fmt.Errorf("查找应用 %q 失败: %w", name, err)
	}
	if err := win.Activate(); err != nil {
		return fmt.Errorf("激活窗口失败: %w", err)
	}
	if cfg.ActivateWaitMs > 0 {
		time.Sleep(time.Duration(cfg.ActivateWaitMs) * time.Millisecond)
	}

	title, _ := win.Title()
	fmt.Printf("已激活: %s\n", title)
	return nil
}

func runScreenshot(file string) error {
	img, err := screen.Capture()
	if err != nil {
		return err
	}
	if err := screen.SavePNG(img, file); err != nil {
		return err
	}
	bounds := img.Bounds()
	fmt.Printf("已保存截图: %s (%dx%d)\n", file, bounds.Dx(), bounds.Dy())
	return nil
}

// runScripts 在本地起一个远程服务, 脚本通过它驱动自动化
func runScripts(dir string, cfg *config.Config) error {
	if dir == "" {
		dir = cfg.ScriptsDir
	}

	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	srv := remote.NewServer(session, apps.NewManager(session), cfg, Version)
	if err := srv.Start(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	runner, err := script.NewRunner(script.Options{
		Dir:       dir,
		ServerURL: "ws://" + srv.Addr() + "/ws",
		Token:     cfg.Token,
		Python:    cfg.PythonPath,
	})
	if err != nil {
		return err
	}
	return runner.RunAll(context.Background())
}

func runServe(cfg *config.Config) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Println("========================================")
	fmt.Printf("  UI Interaction v%s\n", Version)
	fmt.Println("========================================")

	srv := remote.NewServer(session, apps.NewManager(session), cfg, Version)
	if err := srv.Start(); err != nil {
		return err
	}

	fmt.Printf("服务地址: ws://%s/ws\n", srv.Addr())
	if cfg.Token != "" {
		fmt.Println("已启用令牌认证")
	}
	fmt.Println("按 Ctrl+C 退出")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println()
	fmt.Println("[INFO] 正在停止服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("停止服务失败: %w", err)
	}
	fmt.Println("[INFO] 已退出")
	return nil
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("uix v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("uix - 桌面 UI 自动化工具")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  uix [模式] [选项]")
	fmt.Println()
	fmt.Println("模式 (按顺序取第一个命中的, 不带参数时运行 -demo):")
	fmt.Println("  -demo               运行演示流程 (等 3 秒后读前台窗口)")
	fmt.Println("  -info               显示前台窗口与焦点元素信息")
	fmt.Println("  -tree               输出前台窗口的控件树")
	fmt.Println("  -find <名称>        按名称查找控件")
	fmt.Println("  -extract            提取前台窗口的文本元素")
	fmt.Println("  -apps [过滤词]      列出正在运行的应用窗口")
	fmt.Println("  -activate <进程名>  激活应用窗口")
	fmt.Println("  -screenshot <文件>  截取全屏保存为 PNG")
	fmt.Println("  -scripts [目录]     启动本地服务并运行 Python 脚本")
	fmt.Println("  -serve              启动远程自动化服务")
	fmt.Println("  -version            显示版本信息")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -json               以 JSON 格式输出 (配合 -tree/-extract/-apps)")
	fmt.Println("  -listen string      服务监听地址 (默认 127.0.0.1:7701)")
	fmt.Println("  -token string       服务认证令牌")
	fmt.Println("  -python string      Python 解释器路径")
	fmt.Println("  -log-level string   日志级别 (debug/info/warn/error)")
	fmt.Println("  -log-file           同时把日志写到配置目录下的文件")
	fmt.Println("  -save               把本次命令行配置保存到配置文件")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 查看前台窗口的控件树")
	fmt.Println("  uix -tree")
	fmt.Println()
	fmt.Println("  # 启动带令牌认证的远程服务并保存配置")
	fmt.Println("  uix -serve -token SECRET -save")
	fmt.Println()
	fmt.Println("  # 运行 scripts 目录下的自动化脚本")
	fmt.Println("  uix -scripts scripts")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.GetDefaultManager().GetConfigFile())
}

// checkDarwinPermissions 检查 macOS 权限并打印指引
func checkDarwinPermissions() {
	status := permissions.CheckPermissions()
	if status.AllGranted {
		return
	}
	fmt.Printf("[WARN] 辅助功能权限: %v\n", status.Accessibility)
	fmt.Printf("[WARN] 屏幕录制权限: %v\n", status.ScreenRecording)
	fmt.Println(permissions.GetPermissionInstructions(status))
}
