// Package layout 提供确定性的空间布局：照片环、心形曲线点云、散布粒子云和行星表面细节
package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultRingCap 照片环默认最多显示的条目数
// 超出的条目保留前 Cap 个，其余直接丢弃
const DefaultRingCap = 5

// RingStartAngle 第 0 个条目的起始角度
const RingStartAngle = -math.Pi / 2

// RingParams 照片环布局参数
type RingParams struct {
	Radius            float64 // 水平半径 r
	VerticalAmplitude float64 // 垂直调制幅度 k（椭圆的垂直半轴）
	ZOffset           float64 // 相对中心的 Z 偏移
	ZPush             float64 // 额外的 Z 前推，让照片环位于行星朝向镜头的一侧
	Cap               int     // 最多显示的条目数，<= 0 时使用 DefaultRingCap
}

// RingSlot 照片环中的一个位置
type RingSlot struct {
	Index    int        // 在分组内的本地下标
	Angle    float64    // θ_i（弧度）
	Position mgl64.Vec3 // 世界坐标
}

// EffectiveCap 返回实际生效的上限
func (p RingParams) EffectiveCap() int {
	if p.Cap <= 0 {
		return DefaultRingCap
	}
	return p.Cap
}

// VisibleCount 返回 n 个条目中实际会被布局的数量 min(n, cap)
func (p RingParams) VisibleCount(n int) int {
	if n <= 0 {
		return 0
	}
	return min(n, p.EffectiveCap())
}

// Ring 计算 n 个条目围绕 center 的环形布局
//
// 第 i 个条目的角度 θ_i = (i/N)·2π − π/2，N = min(n, cap)
// 位置 = center + (cos θ_i · r, sin θ_i · k, ZOffset + ZPush)
//
// n <= 0 时返回空切片
func Ring(n int, center mgl64.Vec3, p RingParams) []RingSlot {
	count := p.VisibleCount(n)
	slots := make([]RingSlot, 0, count)

	for i := 0; i < count; i++ {
		angle := RingAngle(i, count)
		s, c := math.Sincos(angle)
		slots = append(slots, RingSlot{
			Index: i,
			Angle: angle,
			Position: center.Add(mgl64.Vec3{
				c * p.Radius,
				s * p.VerticalAmplitude,
				p.ZOffset + p.ZPush,
			}),
		})
	}

	return slots
}

// RingAngle 返回 N 个条目中第 i 个的角度
func RingAngle(i, n int) float64 {
	if n <= 0 {
		return RingStartAngle
	}
	return float64(i)/float64(n)*2*math.Pi + RingStartAngle
}
