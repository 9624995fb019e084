package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Reload 一次热重载的结果
// Err 非 nil 时 Scene/Photos 为空，调用方应继续使用旧配置
type Reload struct {
	Scene  *SceneConfig
	Photos *PhotoConfig
	Err    error
}

// ConfigWatcher 监听磁盘上的场景配置和照片列表，变化时重新加载
//
// 监听的是文件所在目录而不是文件本身，编辑器保存时常见的
// "写临时文件再 rename" 也能被捕获。
// 结果通过容量为 1 的通道投递，只保留最新一次。
type ConfigWatcher struct {
	scenePath  string
	photosPath string

	watcher *fsnotify.Watcher
	results chan Reload
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewConfigWatcher 开始监听 scenePath 和 photosPath
// photosPath 可以为空，此时只监听场景配置
func NewConfigWatcher(scenePath, photosPath string) (*ConfigWatcher, error) {
	if scenePath == "" {
		return nil, errors.New("config watcher: scene path required")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	cw := &ConfigWatcher{
		scenePath:  filepath.Clean(scenePath),
		photosPath: photosPath,
		watcher:    w,
		results:    make(chan Reload, 1),
		done:       make(chan struct{}),
	}
	if photosPath != "" {
		cw.photosPath = filepath.Clean(photosPath)
	}

	dirs := map[string]bool{filepath.Dir(cw.scenePath): true}
	if cw.photosPath != "" {
		dirs[filepath.Dir(cw.photosPath)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("config watcher: watch %s: %w", dir, err)
		}
	}

	cw.wg.Add(1)
	go cw.loop()

	log.Printf("[ConfigWatcher] Watching %s %s", cw.scenePath, cw.photosPath)
	return cw, nil
}

func (cw *ConfigWatcher) loop() {
	defer cw.wg.Done()
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			log.Printf("[ConfigWatcher] %s changed (%s)", event.Name, event.Op)
			cw.publish(cw.reload())
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Watch error: %v", err)
		}
	}
}

// relevant 只关心被监听文件的写入、创建和改名
func (cw *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == cw.scenePath || (cw.photosPath != "" && name == cw.photosPath)
}

// reload 从磁盘重新读取两份配置
// 直接读磁盘，不走嵌入资源
func (cw *ConfigWatcher) reload() Reload {
	data, err := os.ReadFile(cw.scenePath)
	if err != nil {
		return Reload{Err: fmt.Errorf("reload %s: %w", cw.scenePath, err)}
	}
	scene, err := ParseSceneConfig(data)
	if err != nil {
		return Reload{Err: fmt.Errorf("reload %s: %w", cw.scenePath, err)}
	}

	var photos *PhotoConfig
	if cw.photosPath != "" {
		data, err := os.ReadFile(cw.photosPath)
		if err != nil {
			return Reload{Err: fmt.Errorf("reload %s: %w", cw.photosPath, err)}
		}
		photos, err = ParsePhotoConfig(data)
		if err != nil {
			return Reload{Err: fmt.Errorf("reload %s: %w", cw.photosPath, err)}
		}
	}

	return Reload{Scene: scene, Photos: photos}
}

// publish 投递结果，丢弃尚未被取走的旧结果
func (cw *ConfigWatcher) publish(r Reload) {
	for {
		select {
		case cw.results <- r:
			return
		default:
		}
		select {
		case <-cw.results:
		default:
		}
	}
}

// Poll 非阻塞地取出最新的重载结果
func (cw *ConfigWatcher) Poll() (Reload, bool) {
	select {
	case r := <-cw.results:
		return r, true
	default:
		return Reload{}, false
	}
}

// Results 返回结果通道，供需要阻塞等待的调用方使用
func (cw *ConfigWatcher) Results() <-chan Reload {
	return cw.results
}

// Close 停止监听，可以重复调用
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}
