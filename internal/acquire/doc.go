// Package acquire downloads source clips to task-scoped temporary files.
package acquire
