// Package quant turns the raw per-gene count table of a project into
// normalized expression values.
//
// It parses the counting tool output and the GTF annotation, joins them on
// gene id and derives TPM and FPKM matrices plus their zero-row filtered
// variants. The math follows the usual definitions: RPK is the raw count
// divided by the gene length in kilobases, TPM rescales RPK so every sample
// column sums to one million, FPKM rescales RPK by the total raw sequencing
// depth of the sample.
package quant
