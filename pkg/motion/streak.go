package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StreakParams 流星参数
// 流星沿 +Z 匀速飞行，越过 ZEnd 后回到 ZStart 并在新的 XY 位置重新出现
type StreakParams struct {
	Seed   uint64  // 随机种子，决定初始进度和每一轮的 XY 位置
	Speed  float64 // 飞行速度（单位/秒）
	ZStart float64 // 起点 Z（远处）
	ZEnd   float64 // 终点 Z（越过后回绕）
	Spread float64 // XY 分布半宽，位置落在 [-Spread, Spread]
}

// ShootingStar 计算流星位置
// 每一轮的 XY 由 (Seed, 轮次) 哈希得到，因此同一时刻的结果总是确定的
func ShootingStar(t float64, p StreakParams) mgl64.Vec3 {
	span := p.ZEnd - p.ZStart
	if span <= 0 || p.Speed <= 0 {
		return mgl64.Vec3{
			(Hash01(p.Seed, 1)*2 - 1) * p.Spread,
			(Hash01(p.Seed, 2)*2 - 1) * p.Spread,
			p.ZStart,
		}
	}

	travelled := Hash01(p.Seed, 0)*span + p.Speed*math.Max(t, 0)
	cycle := uint64(math.Floor(travelled / span))
	z := p.ZStart + math.Mod(travelled, span)

	return mgl64.Vec3{
		(Hash01(p.Seed, 2*cycle+1)*2 - 1) * p.Spread,
		(Hash01(p.Seed, 2*cycle+2)*2 - 1) * p.Spread,
		z,
	}
}

// RiseParams 上升飘动参数（飞舞的爱心精灵）
type RiseParams struct {
	Origin        mgl64.Vec3 // 起始位置
	Seed          uint64     // 随机种子，决定初始高度和摇摆相位
	Speed         float64    // 上升速度（单位/秒）
	Height        float64    // 上升高度，超过后回到起点
	SwayAmplitude float64    // 左右摇摆幅度
	SwayFrequency float64    // 左右摇摆频率（弧度/秒）
}

// Rise 计算上升飘动位置
func Rise(t float64, p RiseParams) mgl64.Vec3 {
	phase := Hash01(p.Seed, 1) * 2 * math.Pi
	sway := math.Sin(p.SwayFrequency*t+phase) * p.SwayAmplitude

	height := 0.0
	if p.Height > 0 {
		height = math.Mod(Hash01(p.Seed, 0)*p.Height+p.Speed*math.Max(t, 0), p.Height)
	}

	return p.Origin.Add(mgl64.Vec3{sway, height, 0})
}

// Hash01 把 (seed, n) 映射到 [0, 1) 的确定性伪随机数
// 使用 splitmix64 混合
func Hash01(seed, n uint64) float64 {
	x := seed + n*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / float64(uint64(1)<<53)
}
