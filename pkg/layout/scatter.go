package layout

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// craterSurfaceFactor 陨石坑相对行星半径的距离
const craterSurfaceFactor = 0.9

// Scatter 在以原点为中心、边长 extent 的立方体内均匀撒点
// 用于漂浮尘埃和星空背景。count <= 0 或 rng 为 nil 时返回空切片
func Scatter(count int, extent float64, rng *rand.Rand) []mgl64.Vec3 {
	if count <= 0 || rng == nil {
		return []mgl64.Vec3{}
	}

	points := make([]mgl64.Vec3, 0, count)
	for i := 0; i < count; i++ {
		points = append(points, mgl64.Vec3{
			(rng.Float64() - 0.5) * extent,
			(rng.Float64() - 0.5) * extent,
			(rng.Float64() - 0.5) * extent,
		})
	}
	return points
}

// ScatterShell 在内外半径之间的球壳内撒点（星空背景）
// 半径按 r² 均匀分布，避免点堆积在内壁
func ScatterShell(count int, innerRadius, outerRadius float64, rng *rand.Rand) []mgl64.Vec3 {
	if count <= 0 || rng == nil {
		return []mgl64.Vec3{}
	}

	points := make([]mgl64.Vec3, 0, count)
	for i := 0; i < count; i++ {
		rSquared := rng.Float64()*(outerRadius*outerRadius-innerRadius*innerRadius) + innerRadius*innerRadius
		r := math.Sqrt(rSquared)

		// 球面均匀方向
		z := rng.Float64()*2 - 1
		theta := rng.Float64() * 2 * math.Pi
		xy := math.Sqrt(1 - z*z)

		points = append(points, mgl64.Vec3{
			xy * math.Cos(theta) * r,
			xy * math.Sin(theta) * r,
			z * r,
		})
	}
	return points
}

// Craters 返回行星表面细节（陨石坑）相对行星中心的位置
// 第 i 个位于 (cos 2i, sin 3i, sin 1.5i)·0.9·size
func Craters(size float64, count int) []mgl64.Vec3 {
	if count <= 0 {
		return []mgl64.Vec3{}
	}

	offsets := make([]mgl64.Vec3, 0, count)
	for i := 0; i < count; i++ {
		fi := float64(i)
		offsets = append(offsets, mgl64.Vec3{
			math.Cos(fi * 2),
			math.Sin(fi * 3),
			math.Sin(fi * 1.5),
		}.Mul(size*craterSurfaceFactor))
	}
	return offsets
}
