package quant_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yrtrans/transhub/pkg/quant"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	m := &quant.Matrix{
		Genes:   []string{"geneA", "geneB"},
		Samples: []string{"s1", "s2"},
		Values: [][]float64{
			{500000, 416666.5},
			{0, 125000},
		},
	}

	path := filepath.Join(t.TempDir(), "tpm.txt")
	require.NoError(t, m.WriteTable(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Geneid\ts1\ts2\n"+
		"geneA\t500000\t416666.5\n"+
		"geneB\t0\t125000\n", string(data))
}
