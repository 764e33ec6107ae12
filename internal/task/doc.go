// Package task defines the processing task model, its state machine, and the
// concurrency-safe in-memory registry shared between the workers and the
// HTTP boundary.
package task
