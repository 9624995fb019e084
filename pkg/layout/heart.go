package layout

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// HeartPoint 经典双瓣心形参数曲线上 t 处的点（未缩放，Z=0）
//
//	x(t) = 16·sin³(t)
//	y(t) = 13·cos(t) − 5·cos(2t) − 2·cos(3t) − cos(4t)
func HeartPoint(t float64) mgl64.Vec3 {
	s := math.Sin(t)
	return mgl64.Vec3{
		16 * s * s * s,
		13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t),
		0,
	}
}

// HeartParams 心形点云参数
type HeartParams struct {
	Scale  float64 // 曲线缩放
	Jitter float64 // 每个轴的随机抖动半宽，0 表示不抖动
}

// Heart 生成 m 个心形曲线上的点
//
// 第 j 个点取 t_j = 2πj/m，缩放后加上 [-Jitter, Jitter] 的均匀抖动，再平移到 center。
// rng 为 nil 或 Jitter 为 0 时结果完全落在曲线上。
// m <= 0 时返回空切片
func Heart(m int, center mgl64.Vec3, p HeartParams, rng *rand.Rand) []mgl64.Vec3 {
	if m <= 0 {
		return []mgl64.Vec3{}
	}

	points := make([]mgl64.Vec3, 0, m)
	for j := 0; j < m; j++ {
		t := float64(j) / float64(m) * 2 * math.Pi
		pt := HeartPoint(t).Mul(p.Scale)

		if rng != nil && p.Jitter > 0 {
			pt = pt.Add(mgl64.Vec3{
				(rng.Float64()*2 - 1) * p.Jitter,
				(rng.Float64()*2 - 1) * p.Jitter,
				(rng.Float64()*2 - 1) * p.Jitter,
			})
		}

		points = append(points, center.Add(pt))
	}

	return points
}
