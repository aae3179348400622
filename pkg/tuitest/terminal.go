package tuitest

import (
	"bytes"
	"io"
)

// queryReplies answers the capability probes lipgloss and bubbletea send on
// startup: cursor position and foreground/background colors, in both OSC
// terminator forms.
var queryReplies = []struct {
	query, reply string
}{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

// Process scans chunk for probes. A short tail is kept so a query split
// across reads is still seen.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending probe.
func (tr *terminalResponder) answerOne() bool {
	best, bestIdx := -1, -1
	for i, q := range queryReplies {
		idx := bytes.Index(tr.buf, []byte(q.query))
		if idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			best, bestIdx = i, idx
		}
	}
	if best < 0 {
		return false
	}
	q := queryReplies[best]
	tr.buf = tr.buf[bestIdx+len(q.query):]
	_, _ = tr.w.Write([]byte(q.reply))
	return true
}
