package scenes

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/game"
	"github.com/decker502/galaxy/pkg/modules"
	"github.com/decker502/galaxy/pkg/systems"
)

// SpaceSceneOptions 创建 SpaceScene 所需的参数
type SpaceSceneOptions struct {
	Scene  *config.SceneConfig
	Photos *config.PhotoConfig

	// PhotoFS 照片文件所在的文件系统，为 nil 时照片框一直显示占位外观
	PhotoFS fs.FS

	// Settings 查看器设置，为 nil 时使用默认设置且不持久化
	Settings *game.SettingsManager

	// StartStep 初始 step（命令行 --step），越界值按 StepPolicy 处理
	StartStep int

	Width  int
	Height int
}

// SpaceScene 星空旅程场景
//
// 每帧的顺序：
//  1. 输入：键盘动作、指针拾取（悬停/点击）
//  2. SceneComposer.Render(step) 让场景对象与当前 step 一致
//  3. CameraSystem.Update(step) 把镜头向航点插值一次
//  4. MotionSystem.Update(t) 重算所有对象的变换
//  5. TextureSystem.Update() 应用后台解码完成的照片
//  6. 清理本帧销毁的实体
type SpaceScene struct {
	config *config.SceneConfig
	photos []config.PhotoItem
	groups map[int]config.PhotoGroup

	// ECS
	entityManager *ecs.EntityManager
	camera        *systems.CameraSystem
	composer      *systems.SceneComposer
	motion        *systems.MotionSystem
	interaction   *systems.InteractionSystem
	textures      *systems.TextureSystem
	loader        *game.AssetLoader

	journey  *game.Journey
	clock    *game.Clock
	settings *game.SettingsManager

	// UI 模块
	card   *modules.ChapterCardModule
	viewer *modules.PhotoViewerModule

	hudFace text.Face

	width  int
	height int
	closed bool
}

// NewSpaceScene 创建星空场景
// 照片分组失败（例如章节 size 覆盖不全）时返回错误
func NewSpaceScene(opts SpaceSceneOptions) (*SpaceScene, error) {
	if opts.Scene == nil {
		return nil, fmt.Errorf("space scene: scene config required")
	}
	var photos []config.PhotoItem
	if opts.Photos != nil {
		photos = opts.Photos.Photos
	}
	groups, err := config.BuildPhotoGroups(photos, opts.Scene.Chapters)
	if err != nil {
		return nil, fmt.Errorf("space scene: %w", err)
	}

	settings := opts.Settings
	if settings == nil {
		settings, _ = game.NewSettingsManager(nil)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.WindowWidth, config.WindowHeight
	}

	em := ecs.NewEntityManager()
	loader := game.NewAssetLoader(opts.PhotoFS, game.DefaultLoaderWorkers)

	s := &SpaceScene{
		config:        opts.Scene,
		photos:        photos,
		groups:        groups,
		entityManager: em,
		loader:        loader,
		journey:       game.NewJourney(opts.Scene.MaxStep()),
		clock:         game.NewClock(),
		settings:      settings,
		width:         width,
		height:        height,
	}

	s.camera = systems.NewCameraSystem(em, opts.Scene)
	s.composer = systems.NewSceneComposer(em, opts.Scene, systems.ComposerOptions{
		Quality:  settings.EffectQuality(),
		Textures: loader,
	})
	s.motion = systems.NewMotionSystem(em)
	s.textures = systems.NewTextureSystem(em, loader)
	s.interaction = systems.NewInteractionSystem(em, s.onPhotoPicked)

	s.card = modules.NewChapterCardModule(opts.Scene.Messages, width, height, s.onCardNext)
	s.viewer = modules.NewPhotoViewerModule(em, photos, loader, width, height)
	s.hudFace = newHUDFace()

	if opts.StartStep != 0 {
		s.journey.Jump(opts.StartStep)
		s.camera.SnapTo(opts.StartStep)
	}

	// 第一帧之前就让场景与 step 一致
	s.advance(0)

	log.Printf("[SpaceScene] Created: %d waypoints, %d photos in %d chapters",
		len(opts.Scene.Waypoints), config.TotalPhotos(groups), len(groups))
	return s, nil
}

// onPhotoPicked 照片框被点击
func (s *SpaceScene) onPhotoPicked(globalIndex int) {
	log.Printf("[SpaceScene] Photo %d picked", globalIndex)
	s.viewer.Open(globalIndex)
}

// onCardNext 章节卡片按钮被点击
func (s *SpaceScene) onCardNext(next int) {
	s.journey.Jump(next)
}

// Update 更新场景
func (s *SpaceScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	for _, a := range pollActions() {
		s.apply(a)
	}
	s.handlePointer(currentPointer())
	s.advance(deltaTime)
}

// advance 推进模拟时间并让所有系统跟上当前 step
func (s *SpaceScene) advance(deltaTime float64) {
	t := s.clock.Tick(deltaTime)
	step := s.journey.Step()

	s.composer.Render(step, s.groups)
	s.camera.Update(step)
	s.motion.Update(t)
	s.textures.Update()
	s.card.Update(s.composer.Step(), deltaTime)
	s.viewer.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Step 当前 step（已按 StepPolicy 处理）
func (s *SpaceScene) Step() int {
	return s.composer.Step()
}

// Close 释放场景持有的对象和后台加载任务
func (s *SpaceScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.loader.Close()
	s.viewer.Cleanup()
	s.composer.Teardown()
	s.entityManager.RemoveMarkedEntities()
	log.Printf("[SpaceScene] Closed")
}

// viewport 当前逻辑屏幕
func (s *SpaceScene) viewport() systems.Viewport {
	return systems.Viewport{Width: s.width, Height: s.height}
}

// Draw 渲染场景
func (s *SpaceScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	s.drawCaption(screen)
	s.card.Draw(screen)
	s.viewer.Draw(screen)
	s.drawHUD(screen)
}
