// Package clip models incoming clip descriptors and the URL resolution
// precedence applied to them.
package clip
