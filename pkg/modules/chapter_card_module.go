package modules

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/utils"
)

// 章节卡片布局
const (
	cardMaxWidth    = 520.0
	cardMargin      = 20.0
	cardHeight      = 150.0
	cardFadeTime    = 0.6 // 切换章节后卡片淡入的时长（秒）
	defaultNextText = "Next"
)

// ChapterCardModule 章节卡片模块
// 在屏幕底部显示当前 step 的标题、正文和"下一步"按钮
//
// 职责：
//   - 按 step 查找文案
//   - 计算按钮文字和下一个 step（最后一步回到 step 0）
//   - 处理按钮点击并通知场景
//
// 使用场景：
//   - SpaceScene: 每个航点一张卡片
type ChapterCardModule struct {
	messages []config.MessageConfig
	face     text.Face

	step    int
	visible bool
	fade    float64 // 当前卡片显示了多久（秒）

	// 回调函数（由外部场景提供），参数是下一个 step
	onNext func(next int)

	windowWidth  int
	windowHeight int
}

// NewChapterCardModule 创建章节卡片模块
//
// 参数:
//   - messages: 每个航点一条文案，可以为空（不显示卡片）
//   - windowWidth, windowHeight: 屏幕尺寸
//   - onNext: 按钮回调，参数是下一个 step
func NewChapterCardModule(messages []config.MessageConfig, windowWidth, windowHeight int, onNext func(next int)) *ChapterCardModule {
	return &ChapterCardModule{
		messages:     messages,
		face:         newFace(),
		visible:      len(messages) > 0,
		onNext:       onNext,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
}

// SetMessages 替换文案（配置重载后）
func (m *ChapterCardModule) SetMessages(messages []config.MessageConfig) {
	m.messages = messages
	if len(messages) == 0 {
		m.visible = false
	}
}

// SetWindowSize 更新屏幕尺寸
func (m *ChapterCardModule) SetWindowSize(width, height int) {
	m.windowWidth, m.windowHeight = width, height
}

// Update 记录当前 step 并推进淡入动画
// step 变化时重新开始淡入
func (m *ChapterCardModule) Update(step int, deltaTime float64) {
	if step != m.step {
		m.step = step
		m.fade = 0
	}
	m.fade += deltaTime
}

// Alpha 卡片当前的不透明度（三次方缓出）
func (m *ChapterCardModule) Alpha() float64 {
	return utils.EaseOutCubic(utils.Clamp(m.fade/cardFadeTime, 0, 1))
}

// Message 返回 step 的文案
func (m *ChapterCardModule) Message(step int) (config.MessageConfig, bool) {
	if step < 0 || step >= len(m.messages) {
		return config.MessageConfig{}, false
	}
	return m.messages[step], true
}

// ButtonLabel 返回 step 卡片的按钮文字，未配置时使用 "Next"
func (m *ChapterCardModule) ButtonLabel(step int) string {
	if msg, ok := m.Message(step); ok && msg.Button != "" {
		return msg.Button
	}
	return defaultNextText
}

// NextStep 返回按钮点击后的 step
// 最后一张卡片之后回到 step 0
func (m *ChapterCardModule) NextStep(step int) int {
	if len(m.messages) == 0 {
		return 0
	}
	return (step + 1) % len(m.messages)
}

// Show 显示卡片
func (m *ChapterCardModule) Show() {
	m.visible = len(m.messages) > 0
}

// Hide 隐藏卡片
func (m *ChapterCardModule) Hide() {
	m.visible = false
}

// Toggle 切换显示/隐藏
func (m *ChapterCardModule) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

// IsActive 卡片是否显示
func (m *ChapterCardModule) IsActive() bool {
	return m.visible
}

// cardRect 卡片区域
func (m *ChapterCardModule) cardRect() rect {
	w := math.Min(cardMaxWidth, float64(m.windowWidth)-2*cardMargin)
	return rect{
		X: (float64(m.windowWidth) - w) / 2,
		Y: float64(m.windowHeight) - cardHeight - cardMargin,
		W: w,
		H: cardHeight,
	}
}

// buttonRect 按钮区域（卡片右下角）
func (m *ChapterCardModule) buttonRect() rect {
	card := m.cardRect()
	return rect{
		X: card.X + card.W - buttonWidth - panelPadding,
		Y: card.Y + card.H - buttonHeight - panelPadding,
		W: buttonWidth,
		H: buttonHeight,
	}
}

// HandleClick 处理点击
// 返回 true 表示点击落在卡片上（调用方不应再把它当作场景点击）
func (m *ChapterCardModule) HandleClick(x, y int) bool {
	if !m.visible {
		return false
	}
	if m.buttonRect().Contains(x, y) {
		next := m.NextStep(m.step)
		log.Printf("[ChapterCardModule] Button clicked: step %d -> %d", m.step, next)
		if m.onNext != nil {
			m.onNext(next)
		}
		return true
	}
	return m.cardRect().Contains(x, y)
}

// Draw 渲染卡片
func (m *ChapterCardModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}
	msg, ok := m.Message(m.step)
	if !ok {
		return
	}

	alpha := m.Alpha()
	if alpha <= 0 {
		return
	}

	card := m.cardRect()
	drawPanel(screen, card, fade(panelFill, alpha), fade(panelBorder, alpha))

	x := card.X + panelPadding
	y := card.Y + panelPadding
	drawText(screen, msg.Title, m.face, x, y, fade(titleColor, alpha))
	y += lineHeight * 1.5

	maxWidth := card.W - 2*panelPadding
	for _, line := range utils.WrapText(msg.Text, m.face, maxWidth) {
		if y > card.Y+card.H-buttonHeight-panelPadding-lineHeight {
			break
		}
		drawText(screen, line, m.face, x, y, fade(bodyColor, alpha))
		y += lineHeight
	}

	drawButton(screen, m.buttonRect(), m.ButtonLabel(m.step), m.face, alpha)
}
