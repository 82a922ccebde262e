package model

// Checkpoint records which stages of a project already completed. It is the
// sole resumability state: a stage whose flag is true is skipped on the next
// run. The engine only ever sets flags, it never clears them.
type Checkpoint map[Stage]bool

// Done reports whether the given stage completed in a previous run.
func (c Checkpoint) Done(stage Stage) bool {
	return c[stage]
}

// Mark flags the given stage as completed.
func (c Checkpoint) Mark(stage Stage) {
	c[stage] = true
}

// Clear removes the completion flag of the given stage.
func (c Checkpoint) Clear(stage Stage) {
	delete(c, stage)
}

// Clone returns an independent copy of the checkpoint.
func (c Checkpoint) Clone() Checkpoint {
	out := make(Checkpoint, len(c))
	for stage, done := range c {
		out[stage] = done
	}

	return out
}
