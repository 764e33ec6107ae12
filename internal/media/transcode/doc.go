// Package transcode wraps the ffmpeg external process behind the operations
// the pipeline needs, with argument plans kept as pure functions for tests.
package transcode
