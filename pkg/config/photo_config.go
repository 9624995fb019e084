package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultPhotoConfigPath 嵌入的默认照片列表
const DefaultPhotoConfigPath = "data/photos.yaml"

// PhotoItem 一张照片
// GlobalIndex 是跨章节的稳定标识，等于它在照片列表中的位置
type PhotoItem struct {
	Source      string `yaml:"src"`
	Caption     string `yaml:"caption"`
	GlobalIndex int    `yaml:"-"`
}

// PhotoGroup 分配给某个章节的照片
// Offset 在分组时记录下来，不会根据本地位置重新计算
type PhotoGroup struct {
	Offset int
	Items  []PhotoItem
}

// GlobalIndex 返回本地下标对应的全局下标
func (g PhotoGroup) GlobalIndex(local int) int {
	return g.Offset + local
}

// PhotoConfig 照片配置文件结构
type PhotoConfig struct {
	Photos []PhotoItem `yaml:"photos"`
}

// ParsePhotoConfig 解析照片列表，并按列表顺序分配全局下标
func ParsePhotoConfig(data []byte) (*PhotoConfig, error) {
	var cfg PhotoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("无法解析照片配置: %w", err)
	}
	for i := range cfg.Photos {
		if cfg.Photos[i].Source == "" {
			return nil, fmt.Errorf("photos[%d]: missing 'src'", i)
		}
		cfg.Photos[i].GlobalIndex = i
	}
	return &cfg, nil
}

// LoadPhotoConfig 加载照片列表
func LoadPhotoConfig(path string) (*PhotoConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParsePhotoConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// BuildPhotoGroups 把照片列表按章节切分为互不相交的连续分组
//
// 章节配置了 Size 时按 Size 切分；否则按 ceil(n/章节数) 平均切分，
// 最后一个章节拿剩余部分。每个分组记录自己的 Offset。
// 照片不足时后面的章节得到空分组。
func BuildPhotoGroups(photos []PhotoItem, chapters []ChapterConfig) (map[int]PhotoGroup, error) {
	groups := make(map[int]PhotoGroup, len(chapters))
	if len(chapters) == 0 {
		return groups, nil
	}

	explicit := false
	for _, ch := range chapters {
		if ch.Size > 0 {
			explicit = true
			break
		}
	}

	perChapter := (len(photos) + len(chapters) - 1) / len(chapters)
	offset := 0
	for i, ch := range chapters {
		if _, dup := groups[ch.Step]; dup {
			return nil, fmt.Errorf("chapters[%d]: duplicate step %d", i, ch.Step)
		}

		size := perChapter
		if explicit {
			size = ch.Size
		}
		if !explicit && i == len(chapters)-1 {
			size = len(photos) - offset
		}

		start := min(offset, len(photos))
		end := min(offset+size, len(photos))
		items := make([]PhotoItem, end-start)
		copy(items, photos[start:end])

		groups[ch.Step] = PhotoGroup{Offset: start, Items: items}
		offset = end
	}

	if explicit && offset < len(photos) {
		return nil, fmt.Errorf("chapter sizes cover %d of %d photos", offset, len(photos))
	}

	return groups, nil
}

// TotalPhotos 统计所有分组中的照片数
func TotalPhotos(groups map[int]PhotoGroup) int {
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	return total
}

// SortedSteps 返回分组的 step 列表（升序）
func SortedSteps(groups map[int]PhotoGroup) []int {
	steps := make([]int, 0, len(groups))
	for step := range groups {
		steps = append(steps, step)
	}
	sort.Ints(steps)
	return steps
}
