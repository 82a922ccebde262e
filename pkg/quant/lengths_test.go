package quant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yrtrans/transhub/pkg/quant"
)

const gtf = `#!genome-build GRCh38
chr1	havana	gene	1	5000	.	+	.	gene_id "geneA"; gene_name "A";
chr1	havana	exon	1	1000	.	+	.	gene_id "geneA"; exon_number "1";
chr1	havana	exon	2001	3000	.	+	.	gene_id "geneA"; exon_number "2";
chr2	havana	exon	1	500	.	-	.	gene_id geneB; exon_number "1";
chr2	havana	CDS	1	400	.	-	.	gene_id "geneB";
not a gtf line
chr3	havana	exon	oops	500	.	+	.	gene_id "geneC";
chr3	havana	exon	1	200	.	+	.	transcript_id "tx1";
`

func TestReadGeneLengths(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "genes.gtf", gtf)

	lengths, err := quant.ReadGeneLengths(path, "exon")
	require.NoError(t, err)

	// Two exon spans summed, the gene feature line is ignored.
	assert.Equal(t, 2000, lengths["geneA"])
	// Unquoted gene_id form.
	assert.Equal(t, 500, lengths["geneB"])
	// Malformed coordinates and rows without gene_id are skipped.
	assert.NotContains(t, lengths, "geneC")
	assert.Len(t, lengths, 2)
}

func TestReadGeneLengthsFeatureType(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "genes.gtf", gtf)

	lengths, err := quant.ReadGeneLengths(path, "CDS")
	require.NoError(t, err)

	assert.Equal(t, quant.GeneLengths{"geneB": 400}, lengths)
}

func TestReadGeneLengthsEmptyResult(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "genes.gtf", "# header only\n")

	lengths, err := quant.ReadGeneLengths(path, "exon")
	require.NoError(t, err)

	assert.Empty(t, lengths)
}

func TestReadGeneLengthsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := quant.ReadGeneLengths("/definitely/not/here.gtf", "exon")
	assert.Error(t, err)
}
