package uia

// Rect 屏幕坐标系下的矩形区域（左上含、右下不含）
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

// NewRect 创建矩形
func NewRect(left, top, right, bottom int32) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width 矩形宽度
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height 矩形高度
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

// Center 矩形中心点坐标
func (r Rect) Center() (x, y int32) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// Contains 判断点是否在矩形内
func (r Rect) Contains(x, y int32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersects 判断两个矩形是否相交
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && r.Right > other.Left &&
		r.Top < other.Bottom && r.Bottom > other.Top
}

// IsEmpty 判断矩形是否为空（宽或高不为正）
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
