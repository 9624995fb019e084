package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 镜头当前的位置和注视点
// 场景中只有一个，只由 CameraSystem 写入
type CameraComponent struct {
	// Position 镜头位置（世界坐标）
	Position mgl64.Vec3

	// LookAt 注视点（世界坐标）
	LookAt mgl64.Vec3
}
