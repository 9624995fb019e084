package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 对象当前帧的世界变换
// 每帧由 MotionSystem 从 (t, SceneObjectComponent) 重新计算，不做增量修改
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // 欧拉角（弧度）
	Scale    float64
	Opacity  float64
}
