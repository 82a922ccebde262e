package model

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrProjectNameMustBeSet  = errors.New("project name must be set")
	ErrSamplesMustBeSet      = errors.New("at least one sample must be set")
	ErrDuplicateSampleName   = errors.New("sample names must be unique")
	ErrIndexMustBeSet        = errors.New("index reference must be set")
	ErrAnnotationMustBeSet   = errors.New("annotation file must be set")
	ErrSampleReadsMustBeSet  = errors.New("sample read1 must be set")
	ErrUnknownDesignSample   = errors.New("design refers to an unknown sample")
	ErrConditionLabelMissing = errors.New("design condition label must be set")
)

// Status describes the lifecycle of a project.
type Status string

const (
	StatusUnprocessed Status = "unprocessed"
	StatusProcessing  Status = "processing"
	StatusCompleted   Status = "completed"
	StatusError       Status = "error"
	// StatusPaused marks a project whose run was cancelled before the last
	// stage completed. A paused project resumes from its checkpoint.
	StatusPaused Status = "paused"
)

// Sample is one sequencing sample of a project.
type Sample struct {
	Name  string `json:"name"`
	Read1 string `json:"r1"`
	// Read2 is empty for single-end samples.
	Read2 string `json:"r2,omitempty"`
}

// Paired reports whether the sample has a second read file.
func (s Sample) Paired() bool {
	return s.Read2 != ""
}

// Condition assigns a condition label to one sample.
type Condition struct {
	Sample    string `json:"sample"`
	Condition string `json:"condition"`
}

// Project describes one analysis project. Everything except Status is
// immutable while a pipeline run is in flight.
type Project struct {
	Name           string      `json:"name"`
	Workspace      string      `json:"workspace"`
	Samples        []Sample    `json:"samples"`
	IndexReference string      `json:"index_reference"`
	AnnotationFile string      `json:"annotation_file"`
	Design         []Condition `json:"design"`
	Created        time.Time   `json:"created"`
	Status         Status      `json:"status"`
}

// Validate checks that the project carries everything a run needs.
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrProjectNameMustBeSet
	}

	if len(p.Samples) == 0 {
		return ErrSamplesMustBeSet
	}

	seen := make(map[string]struct{}, len(p.Samples))

	for _, sample := range p.Samples {
		if sample.Read1 == "" {
			return errors.Wrap(ErrSampleReadsMustBeSet, sample.Name)
		}

		if _, ok := seen[sample.Name]; ok {
			return errors.Wrap(ErrDuplicateSampleName, sample.Name)
		}

		seen[sample.Name] = struct{}{}
	}

	if p.IndexReference == "" {
		return ErrIndexMustBeSet
	}

	if p.AnnotationFile == "" {
		return ErrAnnotationMustBeSet
	}

	for _, cond := range p.Design {
		if _, ok := seen[cond.Sample]; !ok {
			return errors.Wrap(ErrUnknownDesignSample, cond.Sample)
		}

		if cond.Condition == "" {
			return errors.Wrap(ErrConditionLabelMissing, cond.Sample)
		}
	}

	return nil
}

// Dir returns the project directory inside the workspace. It holds the
// project descriptor, the checkpoint file and the results.
func (p *Project) Dir() string {
	return filepath.Join(p.Workspace, p.Name)
}

// ResultsDir returns the directory receiving every stage artifact.
func (p *Project) ResultsDir() string {
	return filepath.Join(p.Dir(), p.Name+"_results")
}

// ConditionOf returns the condition label of the given sample.
func (p *Project) ConditionOf(sample string) (string, bool) {
	for _, cond := range p.Design {
		if cond.Sample == sample {
			return cond.Condition, true
		}
	}

	return "", false
}

// Conditions returns the distinct condition labels in the order they first
// appear in the design. The order is what makes comparison enumeration
// reproducible between runs.
func (p *Project) Conditions() []string {
	var out []string

	seen := map[string]struct{}{}

	for _, cond := range p.Design {
		if _, ok := seen[cond.Condition]; ok {
			continue
		}

		seen[cond.Condition] = struct{}{}
		out = append(out, cond.Condition)
	}

	return out
}
