// Package process cleans up the headless browser process tree started for
// PDF export.
package process
