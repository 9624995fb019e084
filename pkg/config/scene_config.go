package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/decker502/galaxy/pkg/embedded"
	"github.com/decker502/galaxy/pkg/layout"
)

// 默认值常量
const (
	// DefaultLerpFactor 镜头每帧向目标航点插值的比例
	DefaultLerpFactor = 0.035

	// DefaultFOV 默认垂直视角（度）
	DefaultFOV = 60.0

	// DefaultSceneConfigPath 嵌入的默认场景配置
	DefaultSceneConfigPath = "data/scene.yaml"
)

// StepPolicy 越界 step 的处理策略
type StepPolicy string

const (
	// StepPolicyReset 越界时退回 step 0（默认）
	StepPolicyReset StepPolicy = "reset"
	// StepPolicyClamp 越界时夹到最近的边界
	StepPolicyClamp StepPolicy = "clamp"
)

// RingMode 照片环的运动方式
type RingMode string

const (
	// RingModeRing 静态环形布局 + 轻微漂浮
	RingModeRing RingMode = "ring"
	// RingModeOrbit 照片沿轨道绕宿主行星旋转
	RingModeOrbit RingMode = "orbit"
)

// SceneConfig 场景配置文件的顶层结构
// 所有可调参数都在这里，代码中不出现魔法数字
type SceneConfig struct {
	Camera    CameraConfig    `yaml:"camera"`
	Waypoints []Waypoint      `yaml:"waypoints"`
	Planets   []PlanetConfig  `yaml:"planets"`
	PhotoRing PhotoRingConfig `yaml:"photo_ring"`
	Chapters  []ChapterConfig `yaml:"chapters"`
	Ambient   AmbientConfig   `yaml:"ambient"`
	Finale    FinaleConfig    `yaml:"finale"`
	Lights    LightsConfig    `yaml:"lights"`
	Messages  []MessageConfig `yaml:"messages"`
}

// CameraConfig 镜头配置
type CameraConfig struct {
	FOV        float64    `yaml:"fov"`         // 垂直视角（度）
	Near       float64    `yaml:"near"`        // 近裁剪面
	Far        float64    `yaml:"far"`         // 远裁剪面
	LerpFactor float64    `yaml:"lerp_factor"` // 每帧插值比例 α ∈ (0,1)
	Up         mgl64.Vec3 `yaml:"up"`          // 上方向
	StepPolicy StepPolicy `yaml:"step_policy"` // 越界 step 处理策略
}

// Waypoint 镜头航点：位置 + 注视点
type Waypoint struct {
	Position mgl64.Vec3 `yaml:"position"`
	LookAt   mgl64.Vec3 `yaml:"look_at"`
}

// PlanetConfig 行星配置
type PlanetConfig struct {
	Name       string     `yaml:"name"`
	Position   mgl64.Vec3 `yaml:"position"`
	Color      HexColor   `yaml:"color"`
	Size       float64    `yaml:"size"`
	Distort    float64    `yaml:"distort"`     // 表面扭曲强度（渲染提示）
	FloatSpeed float64    `yaml:"float_speed"` // 漂浮速度
	Ring       bool       `yaml:"ring"`        // 是否带行星环
	Texture    string     `yaml:"texture,omitempty"`
}

// PhotoRingConfig 照片环配置
type PhotoRingConfig struct {
	Mode                RingMode    `yaml:"mode"`
	Radius              float64     `yaml:"radius"`
	VerticalAmplitude   float64     `yaml:"vertical_amplitude"`
	ZOffset             float64     `yaml:"z_offset"`
	ZPush               float64     `yaml:"z_push"`
	Cap                 int         `yaml:"cap"`
	FrameSize           float64     `yaml:"frame_size"`  // 常态缩放
	HoverSize           float64     `yaml:"hover_size"`  // 悬停缩放
	OrbitSpeed          float64     `yaml:"orbit_speed"` // orbit 模式的角速度
	OrbitVerticalFactor float64     `yaml:"orbit_vertical_factor"`
	Float               FloatConfig `yaml:"float"`
}

// FloatConfig 漂浮参数
type FloatConfig struct {
	Speed             float64 `yaml:"speed"`
	RotationIntensity float64 `yaml:"rotation_intensity"`
	FloatIntensity    float64 `yaml:"float_intensity"`
}

// ChapterConfig 章节：step → 承载照片环的行星
type ChapterConfig struct {
	Step   int `yaml:"step"`
	Planet int `yaml:"planet"` // Planets 下标
	Size   int `yaml:"size,omitempty"`
}

// AmbientConfig 常驻氛围效果
// 数量是性能参数，可以按画质等比缩小而不影响行为
type AmbientConfig struct {
	Seed              int64      `yaml:"seed"`
	DustCount         int        `yaml:"dust_count"`
	DustExtent        float64    `yaml:"dust_extent"`
	DustDrift         mgl64.Vec3 `yaml:"dust_drift"`
	DustColor         HexColor   `yaml:"dust_color"`
	StarCount         int        `yaml:"star_count"`
	StarInnerRadius   float64    `yaml:"star_inner_radius"`
	StarOuterRadius   float64    `yaml:"star_outer_radius"`
	ShootingStarCount int        `yaml:"shooting_star_count"`
	ShootingStarSpeed float64    `yaml:"shooting_star_speed"`
	ShootingStarZ     [2]float64 `yaml:"shooting_star_z"` // [起点, 终点]
	ShootingStarXY    float64    `yaml:"shooting_star_spread"`
	HeartSpriteCount  int        `yaml:"heart_sprite_count"`
	HeartSpriteSpeed  float64    `yaml:"heart_sprite_speed"`
	HeartSpriteHeight float64    `yaml:"heart_sprite_height"`
	HeartSpriteColor  HexColor   `yaml:"heart_sprite_color"`
}

// FinaleConfig 终章效果
type FinaleConfig struct {
	Center         mgl64.Vec3 `yaml:"center"`
	RingRadius     float64    `yaml:"ring_radius"`
	PulseSpeed     float64    `yaml:"pulse_speed"`
	PulseAmplitude float64    `yaml:"pulse_amplitude"`
	LightCount     int        `yaml:"light_count"`
	LightRadius    float64    `yaml:"light_radius"`
	LightSpeed     float64    `yaml:"light_speed"`
	LightColors    []HexColor `yaml:"light_colors"`
	HeartPoints    int        `yaml:"heart_points"`
	HeartScale     float64    `yaml:"heart_scale"`
	HeartJitter    float64    `yaml:"heart_jitter"`
	Color          HexColor   `yaml:"color"`
	Spotlight      LightSpec  `yaml:"spotlight"`
}

// LightsConfig 常驻灯光
type LightsConfig struct {
	Ambient float64     `yaml:"ambient"`
	Points  []LightSpec `yaml:"points"`
	Spot    LightSpec   `yaml:"spot"`
}

// LightSpec 单个灯光
type LightSpec struct {
	Position  mgl64.Vec3 `yaml:"position"`
	Color     HexColor   `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// MessageConfig 章节卡片文案
type MessageConfig struct {
	Title  string `yaml:"title"`
	Text   string `yaml:"text"`
	Button string `yaml:"button,omitempty"`
}

// HexColor "#rrggbb" 格式的颜色
type HexColor string

// RGBA 解析为 color.RGBA
func (c HexColor) RGBA() (color.RGBA, error) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", string(c))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", string(c), err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustRGBA 解析颜色，失败时返回白色（配置已通过 Validate 时不会失败）
func (c HexColor) MustRGBA() color.RGBA {
	rgba, err := c.RGBA()
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return rgba
}

// MaxStep 返回最大 step（航点数 - 1）
func (c *SceneConfig) MaxStep() int {
	return len(c.Waypoints) - 1
}

// FinaleStep 终章 step，固定为最后一个航点
func (c *SceneConfig) FinaleStep() int {
	return c.MaxStep()
}

// ResolveStep 按 StepPolicy 把任意 step 映射到合法范围
// 第二个返回值表示 step 是否原本就在范围内
func (c *SceneConfig) ResolveStep(step int) (int, bool) {
	maxStep := c.MaxStep()
	if maxStep < 0 {
		return 0, false
	}
	if step >= 0 && step <= maxStep {
		return step, true
	}
	if c.Camera.StepPolicy == StepPolicyClamp {
		if step < 0 {
			return 0, false
		}
		return maxStep, false
	}
	return 0, false
}

// Chapter 返回 step 对应的章节
func (c *SceneConfig) Chapter(step int) (ChapterConfig, bool) {
	for _, ch := range c.Chapters {
		if ch.Step == step {
			return ch, true
		}
	}
	return ChapterConfig{}, false
}

// ChapterSteps 返回所有章节的 step（按配置顺序）
func (c *SceneConfig) ChapterSteps() []int {
	steps := make([]int, 0, len(c.Chapters))
	for _, ch := range c.Chapters {
		steps = append(steps, ch.Step)
	}
	return steps
}

// RingParams 转换为布局参数
func (c *SceneConfig) RingParams() layout.RingParams {
	return layout.RingParams{
		Radius:            c.PhotoRing.Radius,
		VerticalAmplitude: c.PhotoRing.VerticalAmplitude,
		ZOffset:           c.PhotoRing.ZOffset,
		ZPush:             c.PhotoRing.ZPush,
		Cap:               c.PhotoRing.Cap,
	}
}

// ApplyDefaults 为未配置的字段填充默认值
func (c *SceneConfig) ApplyDefaults() {
	if c.Camera.FOV == 0 {
		c.Camera.FOV = DefaultFOV
	}
	if c.Camera.Near == 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far == 0 {
		c.Camera.Far = 500
	}
	if c.Camera.LerpFactor == 0 {
		c.Camera.LerpFactor = DefaultLerpFactor
	}
	if c.Camera.Up == (mgl64.Vec3{}) {
		c.Camera.Up = mgl64.Vec3{0, 1, 0}
	}
	if c.Camera.StepPolicy == "" {
		c.Camera.StepPolicy = StepPolicyReset
	}
	if c.PhotoRing.Mode == "" {
		c.PhotoRing.Mode = RingModeRing
	}
	if c.PhotoRing.Cap == 0 {
		c.PhotoRing.Cap = layout.DefaultRingCap
	}
	if c.PhotoRing.FrameSize == 0 {
		c.PhotoRing.FrameSize = 0.2
	}
	if c.PhotoRing.HoverSize == 0 {
		c.PhotoRing.HoverSize = c.PhotoRing.FrameSize * 1.25
	}
	if c.PhotoRing.OrbitVerticalFactor == 0 {
		c.PhotoRing.OrbitVerticalFactor = 0.5
	}
	for i := range c.Planets {
		if c.Planets[i].Size == 0 {
			c.Planets[i].Size = 1
		}
		if c.Planets[i].FloatSpeed == 0 {
			c.Planets[i].FloatSpeed = 2
		}
	}
}

// Validate 检查配置的一致性，一次返回所有问题
func (c *SceneConfig) Validate() error {
	var errs []error

	if len(c.Waypoints) == 0 {
		errs = append(errs, errors.New("waypoints: at least one waypoint required"))
	}
	if c.Camera.LerpFactor <= 0 || c.Camera.LerpFactor >= 1 {
		errs = append(errs, fmt.Errorf("camera.lerp_factor %v: must be in (0, 1)", c.Camera.LerpFactor))
	}
	if c.Camera.StepPolicy != StepPolicyReset && c.Camera.StepPolicy != StepPolicyClamp {
		errs = append(errs, fmt.Errorf("camera.step_policy %q: want %q or %q", c.Camera.StepPolicy, StepPolicyReset, StepPolicyClamp))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}

	for i, p := range c.Planets {
		if _, err := p.Color.RGBA(); err != nil {
			errs = append(errs, fmt.Errorf("planets[%d]: %w", i, err))
		}
		if p.Size <= 0 {
			errs = append(errs, fmt.Errorf("planets[%d]: size must be positive", i))
		}
	}

	if c.PhotoRing.Mode != RingModeRing && c.PhotoRing.Mode != RingModeOrbit {
		errs = append(errs, fmt.Errorf("photo_ring.mode %q: want %q or %q", c.PhotoRing.Mode, RingModeRing, RingModeOrbit))
	}
	if c.PhotoRing.Cap < 0 {
		errs = append(errs, fmt.Errorf("photo_ring.cap %d: must not be negative", c.PhotoRing.Cap))
	}

	seen := make(map[int]bool)
	for i, ch := range c.Chapters {
		if ch.Step < 0 || ch.Step > c.MaxStep() {
			errs = append(errs, fmt.Errorf("chapters[%d]: step %d outside [0, %d]", i, ch.Step, c.MaxStep()))
		}
		if ch.Step == c.FinaleStep() {
			errs = append(errs, fmt.Errorf("chapters[%d]: step %d is the finale step", i, ch.Step))
		}
		if seen[ch.Step] {
			errs = append(errs, fmt.Errorf("chapters[%d]: duplicate step %d", i, ch.Step))
		}
		seen[ch.Step] = true
		if ch.Planet < 0 || ch.Planet >= len(c.Planets) {
			errs = append(errs, fmt.Errorf("chapters[%d]: planet %d outside [0, %d)", i, ch.Planet, len(c.Planets)))
		}
		if ch.Size < 0 {
			errs = append(errs, fmt.Errorf("chapters[%d]: size must not be negative", i))
		}
	}

	for name, col := range map[string]HexColor{
		"ambient.dust_color":         c.Ambient.DustColor,
		"ambient.heart_sprite_color": c.Ambient.HeartSpriteColor,
		"finale.color":               c.Finale.Color,
	} {
		if col == "" {
			continue
		}
		if _, err := col.RGBA(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(c.Messages) > 0 && len(c.Messages) != len(c.Waypoints) {
		errs = append(errs, fmt.Errorf("messages: got %d, want one per waypoint (%d)", len(c.Messages), len(c.Waypoints)))
	}

	return errors.Join(errs...)
}

// ParseSceneConfig 解析 YAML 场景配置，填充默认值并校验
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("无法解析场景配置: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("场景配置无效: %w", err)
	}
	return &cfg, nil
}

// LoadSceneConfig 加载场景配置
// 路径优先从嵌入资源读取（如 "data/scene.yaml"），否则从文件系统读取
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// readConfigFile 读取配置文件，嵌入资源优先
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("无法读取嵌入配置 %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	return data, nil
}
