// Package picker implements the interactive terminal prompt: it reads
// keystrokes in raw mode, re-ranks suggestions after every edit, and
// repaints the query line and scored candidates with ANSI escapes.
package picker
