package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// replaceFile 先写临时文件再 rename，模拟编辑器的原子保存
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename %s: %v", tmp, err)
	}
}

// waitReload 等待满足条件的重载结果
func waitReload(t *testing.T, cw *ConfigWatcher, accept func(Reload) bool) Reload {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-cw.Results():
			if accept(r) {
				return r
			}
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
			return Reload{}
		}
	}
}

func newTestWatcher(t *testing.T) (*ConfigWatcher, string, string) {
	t.Helper()
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	photosPath := filepath.Join(dir, "photos.yaml")
	replaceFile(t, scenePath, minimalSceneYAML)
	replaceFile(t, photosPath, "photos:\n  - src: a.png\n")

	cw, err := NewConfigWatcher(scenePath, photosPath)
	if err != nil {
		t.Fatalf("NewConfigWatcher() error: %v", err)
	}
	t.Cleanup(func() { cw.Close() })
	return cw, scenePath, photosPath
}

func TestConfigWatcherReload(t *testing.T) {
	cw, scenePath, photosPath := newTestWatcher(t)

	if _, ok := cw.Poll(); ok {
		t.Fatal("Poll() should be empty before any change")
	}

	replaceFile(t, photosPath, "photos:\n  - src: a.png\n  - src: b.png\n")
	r := waitReload(t, cw, func(r Reload) bool {
		return r.Err == nil && r.Photos != nil && len(r.Photos.Photos) == 2
	})
	if r.Scene == nil || len(r.Scene.Waypoints) != 3 {
		t.Errorf("expected scene with 3 waypoints alongside photos, got %+v", r.Scene)
	}

	replaceFile(t, scenePath, minimalSceneYAML+"\nphoto_ring:\n  cap: 3\n")
	waitReload(t, cw, func(r Reload) bool {
		return r.Err == nil && r.Scene != nil && r.Scene.PhotoRing.Cap == 3
	})
}

func TestConfigWatcherInvalidFile(t *testing.T) {
	cw, scenePath, _ := newTestWatcher(t)

	replaceFile(t, scenePath, "camera:\n  lerp_factor: 2\n")
	r := waitReload(t, cw, func(r Reload) bool { return r.Err != nil })
	if r.Scene != nil {
		t.Error("failed reload should not carry a scene")
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	cw, scenePath, _ := newTestWatcher(t)

	replaceFile(t, filepath.Join(filepath.Dir(scenePath), "notes.txt"), "hello")
	time.Sleep(200 * time.Millisecond)
	if r, ok := cw.Poll(); ok {
		t.Errorf("unrelated file should not trigger reload, got %+v", r)
	}
}

func TestConfigWatcherClose(t *testing.T) {
	cw, _, _ := newTestWatcher(t)
	if err := cw.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	if _, err := NewConfigWatcher("", ""); err == nil {
		t.Error("expected error for empty scene path")
	}
}
