// Package config 管理持久化配置，存储在用户目录下的 .ui-interaction 中
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config 运行配置
type Config struct {
	// ListenAddr 远程控制服务监听地址
	ListenAddr string `json:"listen_addr"`
	// Token 远程连接令牌, 为空时不校验
	Token string `json:"token"`
	// ScriptsDir 脚本目录
	ScriptsDir string `json:"scripts_dir"`
	// PythonPath Python 解释器路径, 为空时自动探测
	PythonPath string `json:"python_path"`
	// TypeIntervalMs 模拟输入的字符间隔 (毫秒)
	TypeIntervalMs int `json:"type_interval_ms"`
	// ActivateWaitMs 窗口激活后的等待时间 (毫秒)
	ActivateWaitMs int `json:"activate_wait_ms"`
	// TreeMaxDepth 控件树遍历深度上限
	TreeMaxDepth int `json:"tree_max_depth"`
	// LogLevel 日志级别: debug/info/warn/error
	LogLevel string `json:"log_level"`
	// LogToFile 是否写日志文件
	LogToFile bool `json:"log_to_file"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     "127.0.0.1:7701",
		Token:          "",
		ScriptsDir:     "scripts",
		PythonPath:     "",
		TypeIntervalMs: 10,
		ActivateWaitMs: 200,
		TreeMaxDepth:   3,
		LogLevel:       "info",
		LogToFile:      false,
	}
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".ui-interaction")
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置。文件不存在时返回默认配置;
// 文件里缺失的字段保持默认值
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// LogFilePath 返回当天的日志文件路径
func (m *Manager) LogFilePath() string {
	name := fmt.Sprintf("uix-%s.log", time.Now().Format("20060102"))
	return filepath.Join(m.configDir, "logs", name)
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Config, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *Config) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
