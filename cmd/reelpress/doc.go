// Command reelpress is the CLI companion to reelpressd: it submits clip
// lists, inspects task status, and downloads finished videos over the
// daemon's HTTP API.
package main
