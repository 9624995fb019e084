package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/motion"
)

// MotionKind 驱动对象变换的运动函数
type MotionKind int

const (
	// MotionStatic 不动（可以叠加漂浮）
	MotionStatic MotionKind = iota
	// MotionOrbit 绕中心公转，并朝向 FaceTarget
	MotionOrbit
	// MotionSpin 自转 + 单轴摆动
	MotionSpin
	// MotionFlicker 缩放在 [FlickerMin, FlickerMax] 之间闪烁
	MotionFlicker
	// MotionDrift 整体缓慢旋转（粒子云）
	MotionDrift
	// MotionPulse 脉动缩放 + 自转
	MotionPulse
	// MotionStreak 流星直线飞行并回绕
	MotionStreak
	// MotionRise 上升并左右摇摆
	MotionRise
)

// String 返回运动类型名称
func (k MotionKind) String() string {
	switch k {
	case MotionStatic:
		return "static"
	case MotionOrbit:
		return "orbit"
	case MotionSpin:
		return "spin"
	case MotionFlicker:
		return "flicker"
	case MotionDrift:
		return "drift"
	case MotionPulse:
		return "pulse"
	case MotionStreak:
		return "streak"
	case MotionRise:
		return "rise"
	default:
		return "unknown"
	}
}

// 摆动轴
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// MotionProfile 运动描述：选用哪个运动函数以及它的常量
// 只有 Kind 对应的字段会被使用；Float 是可叠加在任何 Kind 上的漂浮层
type MotionProfile struct {
	Kind MotionKind

	// 基础朝向（弧度）
	BaseRotation mgl64.Vec3

	// MotionOrbit
	Orbit      motion.OrbitParams
	FaceTarget mgl64.Vec3

	// MotionSpin / MotionPulse
	SpinRate        mgl64.Vec3 // 每个轴的自转角速度（弧度/秒）
	WobbleAxis      int
	WobbleFrequency float64
	WobbleAmplitude float64

	// MotionFlicker
	FlickerDelay float64
	FlickerMin   float64
	FlickerMax   float64

	// MotionDrift
	DriftRate mgl64.Vec3

	// MotionPulse
	PulseSpeed     float64
	PulseAmplitude float64

	// MotionStreak
	Streak motion.StreakParams

	// MotionRise
	Rise motion.RiseParams

	// Float 漂浮层，Speed 为 0 时不生效
	Float motion.FloatParams
}

// HasFloat 是否叠加漂浮
func (p MotionProfile) HasFloat() bool {
	return p.Float.Speed != 0
}
