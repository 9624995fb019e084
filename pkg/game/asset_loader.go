package game

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"

	"github.com/decker502/galaxy/pkg/ecs"
)

// DefaultLoaderWorkers 同时解码的图片数
const DefaultLoaderWorkers = 4

// AssetResult 一次加载的结果
type AssetResult struct {
	Entity ecs.EntityID
	Ref    string
	Image  image.Image
	Err    error
}

// AssetLoader 在后台解码照片
//
// 解码在 goroutine 中进行，结果放入通道，由帧循环通过 Poll 取出。
// 已解码的图片按引用缓存，同一张照片在章节切换后不会重复解码。
// Close 之后的请求和尚未投递的结果都会被丢弃。
type AssetLoader struct {
	fsys    fs.FS
	results chan AssetResult
	sem     chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	cache  map[string]image.Image
	closed bool
}

// NewAssetLoader 创建从 fsys 读取图片的加载器
// fsys 为 nil 时所有请求都返回错误，调用方继续使用占位外观
func NewAssetLoader(fsys fs.FS, workers int) *AssetLoader {
	if workers <= 0 {
		workers = DefaultLoaderWorkers
	}
	return &AssetLoader{
		fsys:    fsys,
		results: make(chan AssetResult, 64),
		sem:     make(chan struct{}, workers),
		done:    make(chan struct{}),
		cache:   make(map[string]image.Image),
	}
}

// Request 请求为 entity 加载 ref
func (l *AssetLoader) Request(entity ecs.EntityID, ref string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	key := normalizeRef(ref)
	cached, ok := l.cache[key]
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()

		if ok {
			l.deliver(AssetResult{Entity: entity, Ref: ref, Image: cached})
			return
		}

		select {
		case l.sem <- struct{}{}:
		case <-l.done:
			return
		}
		img, err := l.decode(key)
		<-l.sem

		if err == nil {
			l.mu.Lock()
			l.cache[key] = img
			l.mu.Unlock()
		} else {
			log.Printf("[AssetLoader] %v", err)
		}
		l.deliver(AssetResult{Entity: entity, Ref: ref, Image: img, Err: err})
	}()
}

// normalizeRef 把引用转换为 fs.FS 接受的路径
func normalizeRef(ref string) string {
	return path.Clean(strings.TrimPrefix(ref, "/"))
}

func (l *AssetLoader) decode(ref string) (image.Image, error) {
	if l.fsys == nil {
		return nil, fmt.Errorf("load %s: no asset source", ref)
	}
	f, err := l.fsys.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

func (l *AssetLoader) deliver(r AssetResult) {
	select {
	case l.results <- r:
	case <-l.done:
	}
}

// Poll 非阻塞地取出所有已完成的结果
func (l *AssetLoader) Poll() []AssetResult {
	var out []AssetResult
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Results 返回结果通道
func (l *AssetLoader) Results() <-chan AssetResult {
	return l.results
}

// Close 停止加载并等待所有后台任务退出，可以重复调用
func (l *AssetLoader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()

	l.wg.Wait()
}
