package comments

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mhersch/toolbelt/internal/logging"
)

// Stripper removes comments from text, one line at a time, carrying
// block-comment state across lines.
type Stripper struct {
	style Style
	// KeepBlanks replaces stripped lines with blank lines instead of
	// dropping them, preserving the original line numbering.
	KeepBlanks bool

	inBlock bool
}

// NewStripper creates a Stripper for the given style.
func NewStripper(style Style) *Stripper {
	return &Stripper{style: style}
}

// Strip filters r line by line, writing the de-commented text to w.
func (s *Stripper) Strip(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := 0
	dropped := 0
	for sc.Scan() {
		lines++
		out, keep := s.StripLine(sc.Text())
		if !keep {
			dropped++
			if !s.KeepBlanks {
				continue
			}
			out = ""
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logging.Debug("stripped comments",
		logging.Language(s.style.Name),
		logging.Count(lines),
		"dropped", dropped,
	)
	return nil
}

// StripLine removes comments from a single line. keep is false when the line
// held nothing but comment (or block-comment interior) and should be dropped
// or blanked by the caller. Blank input lines are kept as-is.
func (s *Stripper) StripLine(line string) (out string, keep bool) {
	hadComment := false
	var b strings.Builder
	quote := byte(0) // active string-literal quote, 0 when outside literals

	i := 0
	for i < len(line) {
		if s.inBlock {
			end := strings.Index(line[i:], s.style.BlockEnd)
			if end < 0 {
				hadComment = true
				i = len(line)
				break
			}
			s.inBlock = false
			hadComment = true
			i += end + len(s.style.BlockEnd)
			continue
		}

		c := line[i]

		if quote != 0 {
			if c == '\\' && i+1 < len(line) {
				b.WriteByte(c)
				b.WriteByte(line[i+1])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			b.WriteByte(c)
			i++
			continue
		}

		if strings.IndexByte(s.style.Quotes, c) >= 0 {
			quote = c
			b.WriteByte(c)
			i++
			continue
		}

		if s.style.BlockStart != "" && strings.HasPrefix(line[i:], s.style.BlockStart) {
			s.inBlock = true
			hadComment = true
			i += len(s.style.BlockStart)
			continue
		}

		if tok := s.lineCommentAt(line, i); tok != "" {
			// The rest of the line is comment.
			hadComment = true
			i = len(line)
			break
		}

		b.WriteByte(c)
		i++
	}

	out = strings.TrimRight(b.String(), " \t")
	if out == "" && hadComment {
		return "", false
	}
	return out, true
}

// InBlock reports whether the stripper is inside an unterminated block
// comment, e.g. for diagnosing truncated input.
func (s *Stripper) InBlock() bool {
	return s.inBlock
}

// lineCommentAt returns the line-comment introducer found at position i,
// or the empty string.
func (s *Stripper) lineCommentAt(line string, i int) string {
	for _, tok := range s.style.Line {
		if strings.HasPrefix(line[i:], tok) {
			return tok
		}
	}
	return ""
}
