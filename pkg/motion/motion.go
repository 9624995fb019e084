// Package motion 提供场景对象的参数化运动函数
//
// 所有函数都是纯函数：输入为连续的模拟时间 t（秒）和对象自身的常量参数
// （相位、种子、半径等），输出位置/旋转/缩放。相同的 (t, 参数) 总是得到相同的结果，
// 因此每一帧都可以从头重新计算变换，而不需要在对象上累积状态。
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 闪烁缩放的默认范围，下限大于 0 保证星星不会完全消失
const (
	DefaultFlickerMin = 0.8
	DefaultFlickerMax = 1.0

	// FlickerFrequency 闪烁角频率（弧度/秒）
	FlickerFrequency = 4.0

	// directionEpsilon 方向向量长度低于该值视为零向量
	directionEpsilon = 1e-9
)

// OrbitParams 轨道运动参数
type OrbitParams struct {
	Center         mgl64.Vec3 // 轨道中心（宿主行星位置）
	Radius         float64    // 轨道半径 r
	Speed          float64    // 角速度 ω（弧度/秒）
	Phase          float64    // 初始相位 φ（弧度）
	VerticalFactor float64    // 垂直压缩系数 h
}

// Orbit 计算轨道位置
// 公式：C + (cos(ωt+φ)·r, sin(ωt+φ)·r·h, sin(ωt+φ)·r)
func Orbit(t float64, p OrbitParams) mgl64.Vec3 {
	angle := p.Speed*t + p.Phase
	s, c := math.Sincos(angle)
	return p.Center.Add(mgl64.Vec3{
		c * p.Radius,
		s * p.Radius * p.VerticalFactor,
		s * p.Radius,
	})
}

// FaceTowards 返回让 +Z 朝向 target 的欧拉角 (pitch, yaw, 0)
// from 与 target 重合时返回零旋转
func FaceTowards(from, target mgl64.Vec3) mgl64.Vec3 {
	dir := target.Sub(from)
	if dir.Len() < directionEpsilon {
		return mgl64.Vec3{}
	}
	yaw := math.Atan2(dir[0], dir[2])
	pitch := math.Atan2(-dir[1], math.Hypot(dir[0], dir[2]))
	return mgl64.Vec3{pitch, yaw, 0}
}

// FloatParams 漂浮（上下浮动 + 轻微摇摆）参数
type FloatParams struct {
	Speed             float64 // 浮动速度倍率
	RotationIntensity float64 // 摇摆强度
	FloatIntensity    float64 // 浮动强度
	Seed              float64 // 时间偏移，让不同对象错开节奏
}

// Float 计算漂浮偏移
// 返回位置偏移（只有 Y 分量）和旋转偏移
func Float(t float64, p FloatParams) (offset mgl64.Vec3, rotation mgl64.Vec3) {
	phase := (t + p.Seed) / 4 * p.Speed
	s, c := math.Sincos(phase)

	rotation = mgl64.Vec3{
		c / 8 * p.RotationIntensity,
		s / 8 * p.RotationIntensity,
		s / 20 * p.RotationIntensity,
	}
	offset = mgl64.Vec3{0, s / 10 * p.FloatIntensity, 0}
	return offset, rotation
}

// Flicker 计算星星闪烁缩放
// sin(4t+delay) 映射到 [min, max]
func Flicker(t, delay, min, max float64) float64 {
	wave := (math.Sin(FlickerFrequency*t+delay) + 1) / 2
	return min + (max-min)*wave
}

// Spin 匀速自转角度
func Spin(t, rate float64) float64 {
	return rate * t
}

// Wobble 正弦摆动角度
// 例如行星倾斜 sin(0.2t)·0.1，行星环 sin(0.5t)·0.1
func Wobble(t, frequency, amplitude float64) float64 {
	return math.Sin(frequency*t) * amplitude
}

// Drift 粒子云的缓慢整体旋转
// rate 为每个轴的角速度（弧度/秒）
func Drift(t float64, rate mgl64.Vec3) mgl64.Vec3 {
	return rate.Mul(t)
}

// Pulse 脉动缩放 1 + sin(speed·t)·amplitude
func Pulse(t, speed, amplitude float64) float64 {
	return 1 + math.Sin(speed*t)*amplitude
}
