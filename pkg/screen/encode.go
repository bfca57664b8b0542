package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
)

// ToBase64 将图像编码为 base64 data URI 字符串
// format 支持 "png"(默认)和 "jpeg", quality 仅对 JPEG 生效(1-100, 默认 80)
func ToBase64(img image.Image, format string, quality int) (string, error) {
	var buf bytes.Buffer
	var mimeType string

	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("JPEG 编码失败: %w", err)
		}
		mimeType = "image/jpeg"
	default:
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("PNG 编码失败: %w", err)
		}
		mimeType = "image/png"
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}

// CaptureToBase64 截取全屏并编码为 PNG data URI
func CaptureToBase64() (string, error) {
	img, err := Capture()
	if err != nil {
		return "", err
	}
	return ToBase64(img, "png", 0)
}

// SavePNG 将图像保存为 PNG 文件
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("PNG 编码失败: %w", err)
	}
	return nil
}
