// Package marker implements extraction of marked blocks from text sources.
//
// A marker is a comment line of the form
//
//	# -- mark begin --
//	// mark end --
//
// Lines between a begin marker and its matching end marker form a block.
// Nesting is tracked purely by depth: an end marker closes whatever begin is
// most recently open, regardless of keyword.
package marker

// Kind classifies a line after marker recognition.
type Kind int

const (
	// KindNone marks ordinary content (no marker pattern matched).
	KindNone Kind = iota
	// KindBegin opens a block.
	KindBegin
	// KindEnd closes the most recently opened block.
	KindEnd
	// KindUnknown is a marker line whose keyword is neither begin nor end.
	KindUnknown
)

// String returns the keyword for the kind, for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Line is one input line, immutable once constructed.
type Line struct {
	// Text is the raw line with the trailing newline stripped.
	Text string
	// Source identifies the originating file path or stream name.
	Source string
	// Num is the 1-based line number within the source.
	Num int
	// Kind is the marker classification of the line.
	Kind Kind
	// Keyword is the extracted marker keyword, empty for KindNone.
	Keyword string
}

// NewLine classifies text and builds the Line value for it.
func NewLine(text, source string, num int) Line {
	l := Line{Text: text, Source: source, Num: num}
	kw, ok := Recognize(text)
	if !ok {
		return l
	}
	l.Keyword = kw
	switch kw {
	case "begin":
		l.Kind = KindBegin
	case "end":
		l.Kind = KindEnd
	default:
		l.Kind = KindUnknown
	}
	return l
}
