package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.ListenAddr != "127.0.0.1:7701" {
		t.Errorf("默认 ListenAddr 应为 127.0.0.1:7701, 实际为 %s", config.ListenAddr)
	}
	if config.Token != "" {
		t.Error("默认 Token 应为空")
	}
	if config.ScriptsDir != "scripts" {
		t.Errorf("默认 ScriptsDir 应为 scripts, 实际为 %s", config.ScriptsDir)
	}
	if config.TypeIntervalMs != 10 {
		t.Errorf("默认 TypeIntervalMs 应为 10, 实际为 %d", config.TypeIntervalMs)
	}
	if config.ActivateWaitMs != 200 {
		t.Errorf("默认 ActivateWaitMs 应为 200, 实际为 %d", config.ActivateWaitMs)
	}
	if config.TreeMaxDepth != 3 {
		t.Errorf("默认 TreeMaxDepth 应为 3, 实际为 %d", config.TreeMaxDepth)
	}
	if config.LogLevel != "info" {
		t.Errorf("默认 LogLevel 应为 info, 实际为 %s", config.LogLevel)
	}
	if config.LogToFile {
		t.Error("默认 LogToFile 应为 false")
	}

	t.Logf("默认配置: %+v", config)
}

func TestManagerSaveAndLoad(t *testing.T) {
	// 使用临时目录
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 检查初始状态
	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	// 保存配置
	config := &Config{
		ListenAddr:     "0.0.0.0:9900",
		Token:          "test_token",
		ScriptsDir:     "my-scripts",
		PythonPath:     "/usr/bin/python3",
		TypeIntervalMs: 25,
		ActivateWaitMs: 500,
		TreeMaxDepth:   5,
		LogLevel:       "debug",
		LogToFile:      true,
	}

	err := manager.Save(config)
	if err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	// 检查文件是否存在
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	// 加载配置
	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	// 验证内容
	if loaded.ListenAddr != config.ListenAddr {
		t.Errorf("ListenAddr 不匹配: 期望 %s, 实际 %s", config.ListenAddr, loaded.ListenAddr)
	}
	if loaded.Token != config.Token {
		t.Errorf("Token 不匹配: 期望 %s, 实际 %s", config.Token, loaded.Token)
	}
	if loaded.PythonPath != config.PythonPath {
		t.Errorf("PythonPath 不匹配: 期望 %s, 实际 %s", config.PythonPath, loaded.PythonPath)
	}
	if loaded.TypeIntervalMs != config.TypeIntervalMs {
		t.Errorf("TypeIntervalMs 不匹配: 期望 %d, 实际 %d", config.TypeIntervalMs, loaded.TypeIntervalMs)
	}
	if loaded.LogToFile != config.LogToFile {
		t.Errorf("LogToFile 不匹配: 期望 %v, 实际 %v", config.LogToFile, loaded.LogToFile)
	}

	t.Logf("加载的配置: %+v", loaded)
}

func TestManagerLoadPartialKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 只写部分字段, 缺失字段应保持默认值
	configFile := filepath.Join(tempDir, "config.json")
	err := os.WriteFile(configFile, []byte(`{"token": "abc123"}`), 0600)
	if err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if loaded.Token != "abc123" {
		t.Errorf("Token 应为 abc123, 实际 %s", loaded.Token)
	}
	if loaded.ListenAddr != "127.0.0.1:7701" {
		t.Errorf("缺失的 ListenAddr 应保持默认值, 实际 %s", loaded.ListenAddr)
	}
	if loaded.TypeIntervalMs != 10 {
		t.Errorf("缺失的 TypeIntervalMs 应保持默认值, 实际 %d", loaded.TypeIntervalMs)
	}

	t.Logf("部分配置加载结果: %+v", loaded)
}

func TestManagerClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 先保存一个配置
	config := &Config{
		ListenAddr: "test:1234",
	}
	err := manager.Save(config)
	if err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Fatal("保存后配置文件应存在")
	}

	// 清除配置
	err = manager.Clear()
	if err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}

	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	err = manager.Clear()
	if err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 加载不存在的配置应返回默认值
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}

	defaultConfig := DefaultConfig()
	if config.ListenAddr != defaultConfig.ListenAddr {
		t.Errorf("应返回默认 ListenAddr")
	}

	t.Log("加载不存在的配置返回默认值: OK")
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 创建一个损坏的配置文件
	configFile := filepath.Join(tempDir, "config.json")
	os.MkdirAll(tempDir, 0755)
	err := os.WriteFile(configFile, []byte("not valid json"), 0600)
	if err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	// 加载损坏的配置应返回默认值和错误
	config, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置应返回错误")
	}

	// 但仍应返回默认配置
	if config == nil {
		t.Error("即使出错也应返回默认配置")
	}

	t.Logf("加载损坏配置的错误: %v", err)
}

func TestManagerPaths(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.GetConfigDir() != tempDir {
		t.Errorf("GetConfigDir 应为 %s", tempDir)
	}

	expectedFile := filepath.Join(tempDir, "config.json")
	if manager.GetConfigFile() != expectedFile {
		t.Errorf("GetConfigFile 应为 %s", expectedFile)
	}

	logPath := manager.LogFilePath()
	if filepath.Dir(logPath) != filepath.Join(tempDir, "logs") {
		t.Errorf("日志文件应位于 logs 子目录, 实际 %s", logPath)
	}

	t.Logf("配置目录: %s", manager.GetConfigDir())
	t.Logf("配置文件: %s", manager.GetConfigFile())
	t.Logf("日志文件: %s", logPath)
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("GetDefaultManager 返回 nil")
	}

	// 检查默认路径是否在用户目录下
	homeDir, _ := os.UserHomeDir()
	expectedDir := filepath.Join(homeDir, ".ui-interaction")

	if manager.GetConfigDir() != expectedDir {
		t.Errorf("默认配置目录应为 %s, 实际为 %s", expectedDir, manager.GetConfigDir())
	}

	t.Logf("默认配置目录: %s", manager.GetConfigDir())
}

func TestGlobalFunctions(t *testing.T) {
	// 测试全局函数不会 panic
	_, err := Load()
	if err != nil {
		t.Logf("Load 错误 (可能正常): %v", err)
	}

	// 不实际保存，避免污染用户配置
	t.Log("全局函数测试通过")
}

func TestConfigFilePermissions(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	config := &Config{
		ListenAddr: "test:1234",
		Token:      "sensitive_data",
	}

	err := manager.Save(config)
	if err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	// 检查文件权限 (应为 0600)
	info, err := os.Stat(manager.GetConfigFile())
	if err != nil {
		t.Fatalf("获取文件信息失败: %v", err)
	}

	perm := info.Mode().Perm()
	// 在某些系统上权限可能略有不同，但不应该是全局可读的
	if perm&0077 != 0 {
		t.Logf("警告: 配置文件权限为 %o, 包含敏感信息时建议设为 0600", perm)
	}

	t.Logf("配置文件权限: %o", perm)
}

// BenchmarkSaveLoad 基准测试
func BenchmarkSaveLoad(b *testing.B) {
	tempDir := b.TempDir()
	manager := NewManagerWithDir(tempDir)
	config := &Config{
		ListenAddr:     "test:1234",
		Token:          "token",
		TypeIntervalMs: 10,
		LogToFile:      true,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		manager.Save(config)
		manager.Load()
	}
}
