package components

// PhotoFrameComponent 照片框数据
type PhotoFrameComponent struct {
	// GlobalIndex 跨章节稳定的照片编号，等于分组 Offset + LocalIndex
	GlobalIndex int
	// LocalIndex 在章节分组内的下标
	LocalIndex int
	// Step 所属章节
	Step int

	Caption string
	Source  string
}
