package config

// 窗口配置
// 逻辑屏幕尺寸固定，ebiten 负责缩放到实际窗口
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Galaxy"
)
