package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yrtrans/transhub/pkg/pipeline"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

func TestToolErrorMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      *pipeline.ToolError
		expected string
	}{
		{
			name: "with unit and stderr",
			err: &pipeline.ToolError{
				Stage:    model.StageAlign,
				Unit:     "wt",
				Tool:     "hisat2",
				ExitCode: 1,
				Stderr:   "(ERR): hisat2-align exited with value 1\n",
			},
			expected: "stage align (wt): hisat2 exited with status 1: (ERR): hisat2-align exited with value 1",
		},
		{
			name: "without unit",
			err: &pipeline.ToolError{
				Stage:    model.StageCount,
				Tool:     "featureCounts",
				ExitCode: 255,
			},
			expected: "stage count: featureCounts exited with status 255",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestMissingInputErrorMessage(t *testing.T) {
	t.Parallel()

	err := &pipeline.MissingInputError{Stage: model.StageDiffExpr, Path: "/data/counts.txt"}
	assert.Equal(t, "stage diffexpr: required input /data/counts.txt is missing", err.Error())
}
