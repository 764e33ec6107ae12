// Package pipeline orchestrates task processing end to end and schedules
// tasks onto a bounded worker pool.
package pipeline
