package model

// Stage identifies one of the fixed pipeline phases.
type Stage string

const (
	// StageAlign aligns every sample against the reference index.
	StageAlign Stage = "align"
	// StageCount counts reads per gene and derives expression values.
	StageCount Stage = "count"
	// StageDiffExpr runs the pairwise differential comparisons.
	StageDiffExpr Stage = "diffexpr"
)

// Stages returns the pipeline stages in execution order. The order is fixed:
// counting needs the alignment artifacts and the comparisons need the count
// matrix.
func Stages() []Stage {
	return []Stage{StageAlign, StageCount, StageDiffExpr}
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageAlign, StageCount, StageDiffExpr:
		return true
	}

	return false
}

// StageInfo describes a stage to pipeline options.
type StageInfo struct {
	Stage Stage
	// Index is the position of the stage in the execution order.
	Index int
}
