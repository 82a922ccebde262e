package pipeline

import "time"

// Tools is the external tool configuration of a run. Stages read every
// executable name and parameter from here, nothing comes from process-wide
// state.
type Tools struct {
	// Aligner produces one alignment per sample from its read files.
	Aligner string
	// SortTool turns the intermediate alignment into the final sorted
	// artifact.
	SortTool string
	// Counter builds the count table over all alignment artifacts.
	Counter string
	// DiffTool runs one differential contrast or summary.
	DiffTool string
	// Threads is passed to tools that accept a thread count.
	Threads int
	// Timeout bounds every tool invocation. Zero means unbounded.
	Timeout time.Duration
	// FeatureType selects the annotation features summed into gene
	// lengths.
	FeatureType string
	// FoldChange drops combined differential rows whose absolute
	// log2 fold change is below log2(FoldChange). Values at or below 1
	// disable the filter.
	FoldChange float64
	// ExtraEnv is appended to the environment of every invocation.
	ExtraEnv []string
}

// DefaultTools returns the stock tool configuration.
func DefaultTools() Tools {
	return Tools{
		Aligner:     "hisat2",
		SortTool:    "samtools",
		Counter:     "featureCounts",
		DiffTool:    "pydeseq2",
		Threads:     4,
		FeatureType: "exon",
		FoldChange:  1,
	}
}

func (t Tools) withDefaults() Tools {
	def := DefaultTools()

	if t.Aligner == "" {
		t.Aligner = def.Aligner
	}

	if t.SortTool == "" {
		t.SortTool = def.SortTool
	}

	if t.Counter == "" {
		t.Counter = def.Counter
	}

	if t.DiffTool == "" {
		t.DiffTool = def.DiffTool
	}

	if t.Threads <= 0 {
		t.Threads = def.Threads
	}

	if t.FeatureType == "" {
		t.FeatureType = def.FeatureType
	}

	if t.FoldChange <= 0 {
		t.FoldChange = def.FoldChange
	}

	return t
}
