// Package model provides the data structures shared by the pipeline package.
// It defines the project descriptor, the closed set of pipeline stages,
// the checkpoint record backing resumable runs, and the option interface
// used to observe a run.
package model
