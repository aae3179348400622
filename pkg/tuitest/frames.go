package tuitest

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Frame is one full redraw, with and without escape sequences.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

// Screen clears and alt-screen switches start a new frame.
var frameSeparator = regexp.MustCompile(`\x1b\[[0-9;]*J|\x1b\[\?1049[hl]`)

func parseFrames(raw []byte) []Frame {
	cleaned := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, segment := range frameSeparator.Split(cleaned, -1) {
		segment = strings.TrimPrefix(strings.Trim(segment, "\x00"), "\x1b[H")
		plain := stripANSI(segment)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: segment, Plain: plain})
	}
	if len(frames) == 0 && cleaned != "" {
		frames = append(frames, Frame{ANSI: cleaned, Plain: stripANSI(cleaned)})
	}
	return frames
}

// FinalFrame returns the last frame; false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Contains reports whether any frame shows text.
func (r *Recording) Contains(text string) bool {
	if r == nil {
		return false
	}
	return strings.Contains(stripANSI(string(r.Raw)), text)
}

func stripANSI(s string) string {
	s = ansi.Strip(s)
	s = strings.NewReplacer("\x0e", "", "\x0f", "").Replace(s)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
