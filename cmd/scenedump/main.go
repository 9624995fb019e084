// scenedump 打印某个 step 下场景中存在的所有对象
//
// 用法：
//
//	go run ./cmd/scenedump --step 2 --time 1.5
//	go run ./cmd/scenedump --config my_scene.yaml --photos my_photos.yaml --kind photo-frame
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/embedded"
	"github.com/decker502/galaxy/pkg/systems"
)

var (
	configPath = flag.String("config", config.DefaultSceneConfigPath, "Scene config path")
	photosPath = flag.String("photos", config.DefaultPhotoConfigPath, "Photo list path")
	step       = flag.Int("step", 0, "Chapter step to compose")
	simTime    = flag.Float64("time", 0, "Simulated time in seconds")
	kindFilter = flag.String("kind", "", "Only show objects of this kind (planet, photo-frame, ...)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	columnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	photoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240")).MarginTop(1)
)

// columns 表头与列宽
var columns = []struct {
	title string
	width int
}{
	{"ID", 6},
	{"KIND", 16},
	{"ROLE", 18},
	{"POSITION", 28},
	{"SCALE", 8},
	{"OPACITY", 8},
	{"PHOTO", 8},
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	// 与查看器相同的路径约定："data/" 开头的路径从当前目录读取
	embedded.Init(os.DirFS("."))

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "scenedump: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer) error {
	sceneCfg, err := config.LoadSceneConfig(*configPath)
	if err != nil {
		return err
	}
	photoCfg, err := config.LoadPhotoConfig(*photosPath)
	if err != nil {
		return err
	}

	objects, resolved, err := compose(sceneCfg, photoCfg.Photos, *step, *simTime)
	if err != nil {
		return err
	}
	if *kindFilter != "" {
		objects = filterKind(objects, *kindFilter)
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("step %d (resolved %d) at t=%.2fs", *step, resolved, *simTime)))
	fmt.Fprintln(w, render(objects))
	fmt.Fprintln(w, summaryStyle.Render(summary(objects)))
	return nil
}

// compose 构建场景并推进到 simTime，返回可见对象
func compose(sceneCfg *config.SceneConfig, photos []config.PhotoItem, step int, simTime float64) ([]systems.ObjectDescriptor, int, error) {
	groups, err := config.BuildPhotoGroups(photos, sceneCfg.Chapters)
	if err != nil {
		return nil, 0, err
	}

	em := ecs.NewEntityManager()
	composer := systems.NewSceneComposer(em, sceneCfg, systems.ComposerOptions{})
	motion := systems.NewMotionSystem(em)

	composer.Render(step, groups)
	motion.Update(simTime)
	em.RemoveMarkedEntities()

	return composer.VisibleObjects(), composer.Step(), nil
}

func filterKind(objects []systems.ObjectDescriptor, kind string) []systems.ObjectDescriptor {
	out := objects[:0:0]
	for _, o := range objects {
		if o.Kind.String() == kind {
			out = append(out, o)
		}
	}
	return out
}

// row 一个对象的各列文本
func row(o systems.ObjectDescriptor) []string {
	photo := "-"
	if o.GlobalIndex >= 0 {
		photo = fmt.Sprintf("#%d", o.GlobalIndex)
	}
	return []string{
		fmt.Sprintf("%d", o.ID),
		o.Kind.String(),
		string(o.Role),
		fmt.Sprintf("(%.2f, %.2f, %.2f)", o.Position.X(), o.Position.Y(), o.Position.Z()),
		fmt.Sprintf("%.2f", o.Scale),
		fmt.Sprintf("%.2f", o.Opacity),
		photo,
	}
}

func render(objects []systems.ObjectDescriptor) string {
	lines := make([]string, 0, len(objects)+1)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = columnStyle.Width(c.width).Render(c.title)
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, o := range objects {
		style := valueStyle
		if o.GlobalIndex >= 0 {
			style = photoStyle
		}
		cells := row(o)
		for i, c := range columns {
			cells[i] = style.Width(c.width).Render(cells[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// summary 按类别统计对象数
func summary(objects []systems.ObjectDescriptor) string {
	counts := make(map[string]int)
	for _, o := range objects {
		counts[o.Kind.String()]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	parts = append(parts, fmt.Sprintf("total=%d", len(objects)))
	return strings.Join(parts, "  ")
}
