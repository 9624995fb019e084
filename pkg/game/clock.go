package game

import "math"

// Clock 场景的模拟时钟
// 所有运动函数都以 Elapsed() 为输入，时间只增不减
type Clock struct {
	elapsed float64
	paused  bool
}

// NewClock 创建从 0 开始的时钟
func NewClock() *Clock {
	return &Clock{}
}

// Tick 推进 dt 秒并返回新的累计时间
// 负数、NaN 和无穷大的 dt 被忽略
func (c *Clock) Tick(dt float64) float64 {
	if c.paused || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return c.elapsed
	}
	c.elapsed += dt
	return c.elapsed
}

// Elapsed 返回累计的模拟时间（秒）
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// SetPaused 暂停或恢复时钟
func (c *Clock) SetPaused(paused bool) {
	c.paused = paused
}

// IsPaused 时钟是否暂停
func (c *Clock) IsPaused() bool {
	return c.paused
}
