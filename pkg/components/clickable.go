package components

// ClickableComponent 标记实体可以被鼠标点击
// 命中区域是以对象当前位置为中心的球体，半径乘以当前缩放
type ClickableComponent struct {
	Radius    float64 // 可点击区域的半径（世界单位，未缩放）
	IsEnabled bool    // 是否可以被点击
}
