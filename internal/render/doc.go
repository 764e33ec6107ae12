// Package render burns resolved captions into assembled video, walking a
// graceful-degradation chain from animated ASS burn-in down to a plain copy.
package render
