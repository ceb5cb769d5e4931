package layout

import (
	"encoding/json"
	"os"
)

// Snapshot 是排版结果的只读快照，便于调试输出或比较两次排版。
type Snapshot struct {
	Text      string         `json:"text"`
	Box       Box            `json:"box"`
	Leading   int            `json:"leading"`
	HAlign    string         `json:"halign"`
	VAlign    string         `json:"valign"`
	Justified bool           `json:"justified"`
	Height    int            `json:"height"`
	Lines     []LineSnapshot `json:"lines"`
}

// LineSnapshot is a line with its words inlined.
type LineSnapshot struct {
	Line
	Words []WordSnapshot `json:"words"`
}

// WordSnapshot is a word with its glyphs inlined.
type WordSnapshot struct {
	Word
	Trailing int     `json:"trailingGap"`
	Glyphs   []Glyph `json:"glyphs"`
}

// Snapshot copies the current layout.
func (t *Text) Snapshot() Snapshot {
	t.ensure()
	s := Snapshot{
		Text:      t.raw,
		Box:       t.box,
		Leading:   t.leading,
		HAlign:    t.halign.String(),
		VAlign:    t.valign.String(),
		Justified: t.justifying(),
		Height:    t.height,
		Lines:     make([]LineSnapshot, 0, t.lines.size()),
	}
	for _, l := range t.lines.items {
		ls := LineSnapshot{Line: l, Words: make([]WordSnapshot, 0, l.Words())}
		for wi := l.First; wi < l.Last; wi++ {
			w := t.words.at(wi)
			glyphs := make([]Glyph, w.Last-w.First)
			copy(glyphs, t.glyphs.items[w.First:w.Last])
			ls.Words = append(ls.Words, WordSnapshot{Word: *w, Trailing: w.TrailingGap(), Glyphs: glyphs})
		}
		s.Lines = append(s.Lines, ls)
	}
	return s
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(t *Text, path string) error {
	if t == nil {
		return nil
	}
	data, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
