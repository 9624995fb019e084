package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 效果画质的取值范围
// 画质只缩放氛围粒子的数量，不影响场景行为
const (
	MinEffectQuality = 0.1
	MaxEffectQuality = 1.0
)

// ViewerSettings 查看器设置
// 只保存显示偏好，不保存镜头位置或当前章节
type ViewerSettings struct {
	// 显示设置
	EffectQuality float64 `yaml:"effectQuality"` // 氛围效果数量倍率 0.1 ~ 1.0
	Fullscreen    bool    `yaml:"fullscreen"`    // 启动时是否全屏
	ShowCaptions  bool    `yaml:"showCaptions"`  // 悬停时是否显示照片说明
	ShowHUD       bool    `yaml:"showHUD"`       // 是否显示调试信息
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		EffectQuality: 1.0,
		Fullscreen:    false,
		ShowCaptions:  true,
		ShowHUD:       false,
	}
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，旧版本文件缺失的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.EffectQuality = clampQuality(loaded.EffectQuality)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// EffectQuality 返回当前画质倍率
func (sm *SettingsManager) EffectQuality() float64 {
	return sm.settings.EffectQuality
}

// SetEffectQuality 设置画质倍率
//
// 值会被限制在 MinEffectQuality ~ MaxEffectQuality 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEffectQuality(quality float64) {
	sm.settings.EffectQuality = clampQuality(quality)
}

// SetFullscreen 设置全屏模式
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowCaptions 设置是否显示照片说明
func (sm *SettingsManager) SetShowCaptions(enabled bool) {
	sm.settings.ShowCaptions = enabled
}

// SetShowHUD 设置是否显示调试信息
func (sm *SettingsManager) SetShowHUD(enabled bool) {
	sm.settings.ShowHUD = enabled
}

// clampQuality 将画质限制在合法范围内
// 0 或负数视为未设置，退回最高画质
func clampQuality(quality float64) float64 {
	if quality <= 0 {
		return MaxEffectQuality
	}
	if quality < MinEffectQuality {
		return MinEffectQuality
	}
	if quality > MaxEffectQuality {
		return MaxEffectQuality
	}
	return quality
}
