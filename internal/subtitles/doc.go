// Package subtitles builds the styled, word-animated ASS subtitle
// definitions burned into rendered videos.
package subtitles
