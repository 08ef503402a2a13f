package document

import (
	"fmt"
	"strings"

	"github.com/eletroproposta/eletroproposta/internal/config"
)

// Measurer estimates block heights from line counts and the configured page
// metrics. There is no font rasterization here: heights are deterministic
// estimates, good enough for pagination decisions.
type Measurer struct {
	cfg config.Document
}

func NewMeasurer(cfg config.Document) *Measurer {
	return &Measurer{cfg: cfg}
}

// blockPadding is the extra vertical room each kind needs beyond its text
// lines, expressed in line heights.
var blockPadding = map[BlockKind]float64{
	BlockHeader:       2,
	BlockClientInfo:   1,
	BlockServiceTable: 2,
	BlockNotes:        1,
	BlockPaymentTerms: 1,
	BlockFooter:       1,
}

// Measure fills in the block height from its wrapped line count.
func (m *Measurer) Measure(block Block) (Block, error) {
	padding, ok := blockPadding[block.Kind]
	if !ok {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockKind, block.Kind)
	}
	block.Lines = m.wrapAll(block.Lines)
	block.Height = (float64(len(block.Lines)) + padding) * m.cfg.LineHeight
	return block, nil
}

// UsableHeight is the vertical space available for blocks on a single page.
func (m *Measurer) UsableHeight() float64 {
	return m.cfg.PageHeight - m.cfg.MarginTop - m.cfg.MarginBottom
}

func (m *Measurer) wrapAll(lines []string) []string {
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, m.wrap(line)...)
	}
	return wrapped
}

// wrap breaks a line on word boundaries so no line exceeds the configured
// character budget. A single word longer than the budget stays on its own line.
func (m *Measurer) wrap(line string) []string {
	if m.cfg.CharsPerLine <= 0 || len([]rune(line)) <= m.cfg.CharsPerLine {
		return []string{line}
	}

	var result []string
	var current strings.Builder
	currentLen := 0
	for _, word := range strings.Fields(line) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > m.cfg.CharsPerLine {
			result = append(result, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteString(" ")
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		result = append(result, current.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}
