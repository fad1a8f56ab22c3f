package presentation

import (
	"strconv"
	"strings"
	"sync"
)

const lineEnding = "\r\n"

// FormatSteps numbers steps from 1, one per line.
func FormatSteps(steps []string) string {
	var b strings.Builder
	for i, step := range steps {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(step)
		b.WriteString(lineEnding)
	}
	return b.String()
}

// TextView is an InstructionView that keeps the last text set.
type TextView struct {
	mu   sync.Mutex
	text string
}

func (v *TextView) SetText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = text
}

func (v *TextView) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text
}
