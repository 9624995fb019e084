package game

import "log"

// Journey 持有当前章节 step
// step 只按 ±1 变化或回到 0；核心逻辑只读取它
type Journey struct {
	step    int
	maxStep int
}

// NewJourney 创建一段 maxStep+1 个章节的旅程
func NewJourney(maxStep int) *Journey {
	if maxStep < 0 {
		maxStep = 0
	}
	return &Journey{maxStep: maxStep}
}

// Step 当前 step
func (j *Journey) Step() int {
	return j.step
}

// MaxStep 最后一个 step
func (j *Journey) MaxStep() int {
	return j.maxStep
}

// IsFinale 是否处于最后一个章节
func (j *Journey) IsFinale() bool {
	return j.step == j.maxStep
}

// Next 前进一章，最后一章之后回到开头
func (j *Journey) Next() int {
	j.step = (j.step + 1) % (j.maxStep + 1)
	log.Printf("[Journey] Step -> %d", j.step)
	return j.step
}

// Prev 后退一章，停在第一章
func (j *Journey) Prev() int {
	if j.step > 0 {
		j.step--
		log.Printf("[Journey] Step -> %d", j.step)
	}
	return j.step
}

// Reset 回到第一章
func (j *Journey) Reset() {
	j.step = 0
}

// Jump 直接跳到指定 step（命令行 --step）
// 越界值原样保存，由场景按 StepPolicy 处理
func (j *Journey) Jump(step int) {
	j.step = step
}

// SetMaxStep 配置重载后更新章节数
// 当前 step 超出新范围时回到开头
func (j *Journey) SetMaxStep(maxStep int) {
	if maxStep < 0 {
		maxStep = 0
	}
	j.maxStep = maxStep
	if j.step > maxStep {
		j.step = 0
	}
}
