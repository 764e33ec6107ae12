// Package captions turns word timestamps, caller-supplied scripts, or clip
// metadata into ordered caption cues via a three-tier fallback strategy.
package captions
