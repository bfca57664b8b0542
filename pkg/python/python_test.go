package python

import "testing"

// 检测结果依赖运行环境, 只校验结果自身的一致性
func TestDetectPython(t *testing.T) {
	info := DetectPython()

	if !info.Available {
		t.Log("当前环境未检测到 Python 3")
		if info.Version != "" || info.Path != "" {
			t.Errorf("不可用时版本与路径应为空: %+v", info)
		}
		return
	}

	t.Logf("检测到 Python %s (%s)", info.Version, info.Path)
	if info.Version == "" {
		t.Error("可用时应带版本号")
	}
	if info.Path == "" {
		t.Error("可用时应带可执行文件路径")
	}
	if len(info.Version) >= 2 && info.Version[:2] == "2." {
		t.Errorf("Python 2 应被跳过, 实际检测到 %s", info.Version)
	}
}
