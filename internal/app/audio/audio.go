// Package audio shells out to ffprobe for recording metadata.
package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Duration returns the playable length of an audio file in seconds.
// Requires ffprobe on PATH.
func Duration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", filePath, err)
	}
	return parseDurationOutput(output)
}

func parseDurationOutput(output []byte) (float64, error) {
	raw := strings.TrimSpace(string(output))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable ffprobe duration %q: %w", raw, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative ffprobe duration %q", raw)
	}
	return seconds, nil
}
