// Package pipeline sequences the analysis stages of an RNA-seq project:
// alignment, counting and differential expression. Stages run strictly one
// after the other on a single worker, external tools do the heavy lifting
// through an Invoker, and completed stages are checkpointed so an
// interrupted run resumes where it stopped.
package pipeline
