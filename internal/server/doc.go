// Package server exposes the HTTP boundary: webhook intake, task status,
// result download, and health.
package server
