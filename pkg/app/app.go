// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开设置存储、
// 创建场景，并在配置文件变化时重建场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/embedded"
	"github.com/decker502/galaxy/pkg/game"
	"github.com/decker502/galaxy/pkg/scenes"
)

// gdataAppName 设置存储使用的应用名
const gdataAppName = "galaxy"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ScenePath 场景配置路径，"data/" 开头时优先读取嵌入资源
	ScenePath string
	// PhotosPath 照片列表路径
	PhotosPath string
	// PhotosDir 照片文件所在目录，为空或不存在时只显示占位外观
	PhotosDir string
	// Step 初始 step
	Step int
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	watcher      *config.ConfigWatcher
	verbose      bool

	sceneConfig *config.SceneConfig
	photoConfig *config.PhotoConfig
	photoFS     fs.FS
	startStep   int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.ScenePath == "" {
		cfg.ScenePath = config.DefaultSceneConfigPath
	}
	if cfg.PhotosPath == "" {
		cfg.PhotosPath = config.DefaultPhotoConfigPath
	}

	sceneConfig, err := config.LoadSceneConfig(cfg.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	photoConfig, err := config.LoadPhotoConfig(cfg.PhotosPath)
	if err != nil {
		return nil, fmt.Errorf("照片配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %s (%d waypoints) and %s (%d photos)",
		cfg.ScenePath, len(sceneConfig.Waypoints), cfg.PhotosPath, len(photoConfig.Photos))

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     openSettings(),
		verbose:      cfg.Verbose,
		sceneConfig:  sceneConfig,
		photoConfig:  photoConfig,
		photoFS:      openPhotoDir(cfg.PhotosDir),
		startStep:    cfg.Step,
	}

	a.sceneManager.SetSceneFactory(a.newScene)
	scene, err := a.newScene()
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	a.sceneManager.SwitchTo(scene)

	a.watcher = watchConfig(cfg.ScenePath, cfg.PhotosPath)

	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// openSettings 打开设置存储，失败时降级为仅内存设置
func openSettings() *game.SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settings, _ := game.NewSettingsManager(gdataManager)
	return settings
}

// openPhotoDir 返回照片目录的文件系统
func openPhotoDir(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Printf("[App] Photo directory %s not available, using placeholders", dir)
		return nil
	}
	return os.DirFS(dir)
}

// watchConfig 监听磁盘上的配置文件
// 嵌入资源不会变化，不监听
func watchConfig(scenePath, photosPath string) *config.ConfigWatcher {
	if embedded.Exists(scenePath) {
		return nil
	}
	if embedded.Exists(photosPath) {
		photosPath = ""
	}
	w, err := config.NewConfigWatcher(scenePath, photosPath)
	if err != nil {
		log.Printf("[App] Warning: hot reload disabled: %v", err)
		return nil
	}
	return w
}

// newScene 用当前配置创建场景，保持当前 step
func (a *App) newScene() (game.Scene, error) {
	step := a.startStep
	if current, ok := a.sceneManager.GetCurrentScene().(*scenes.SpaceScene); ok {
		step = current.Step()
	}
	return scenes.NewSpaceScene(scenes.SpaceSceneOptions{
		Scene:     a.sceneConfig,
		Photos:    a.photoConfig,
		PhotoFS:   a.photoFS,
		Settings:  a.settings,
		StartStep: step,
		Width:     config.WindowWidth,
		Height:    config.WindowHeight,
	})
}

// applyReload 应用一次热重载结果；失败时继续使用旧配置
func (a *App) applyReload(r config.Reload) {
	if r.Err != nil {
		log.Printf("[App] Reload failed, keeping current scene: %v", r.Err)
		return
	}
	if r.Scene != nil {
		a.sceneConfig = r.Scene
	}
	if r.Photos != nil {
		a.photoConfig = r.Photos
	}
	a.sceneManager.Rebuild()
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if a.watcher != nil {
		if r, ok := a.watcher.Poll(); ok {
			a.applyReload(r)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	isFullscreen := ebiten.IsFullscreen()
	if isFullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(!isFullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close 停止配置监听并关闭场景
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
