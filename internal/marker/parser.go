package marker

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mhersch/toolbelt/internal/format"
	"github.com/mhersch/toolbelt/internal/logging"
)

// DefaultMaxLineLength is the per-line byte limit applied when Options leaves
// MaxLineLength at zero.
const DefaultMaxLineLength = 4096

// Options configures a Parser for one invocation.
type Options struct {
	// PrintLineNumbers shows the line-number gutter on emitted content.
	PrintLineNumbers bool
	// PrintFilenames emits a header before a source's first block.
	PrintFilenames bool
	// PrintContent emits block content. When false only the names of sources
	// containing markers are emitted.
	PrintContent bool
	// SuppressErrors counts diagnostics without printing them. A failure to
	// open a top-level source is still printed.
	SuppressErrors bool
	// MaxLineLength aborts a source whose line exceeds this many bytes.
	// -1 means unlimited; 0 means DefaultMaxLineLength.
	MaxLineLength int
	// TabWidth is the tab-stop width used by the gutter formatter.
	TabWidth int
	// Width supplies the output width for wrapping; nil means unbounded.
	Width format.WidthFunc
}

// Parser extracts marked blocks from sources, accumulating counters in a
// single Status across every source of the run.
type Parser struct {
	opts   Options
	status *Status
	out    io.Writer
	errOut io.Writer
	fmtr   *format.Formatter

	// printedAny is set once anything was written to out, so a later source
	// header is preceded by a blank separator.
	printedAny bool
}

// sourceState is the per-source slice of parser state. The Status counters
// deliberately live outside it.
type sourceState struct {
	source        string
	stack         Stack
	emittedHeader bool
	closedBlock   bool
}

// New creates a Parser writing content to out and diagnostics to errOut.
func New(opts Options, out, errOut io.Writer) *Parser {
	return &Parser{
		opts:   opts,
		status: &Status{},
		out:    out,
		errOut: errOut,
		fmtr:   format.New(opts.PrintLineNumbers, opts.TabWidth, opts.Width),
	}
}

// Status returns the run counters. The same Status is updated across all
// sources processed by this Parser.
func (p *Parser) Status() *Status {
	return p.status
}

// ProcessReader scans one source line by line. Recoverable marker errors are
// counted and diagnosed without interrupting the scan. A fatal condition
// (over-long line, invalid encoding, read failure) aborts this source only:
// it is counted, diagnosed, and returned.
func (p *Parser) ProcessReader(source string, r io.Reader) error {
	src := &sourceState{source: source}
	br := bufio.NewReader(r)

	logging.Debug("processing source", logging.Source(source))

	num := 0
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return p.fail(source, num+1, fmt.Errorf("read failed: %w", err))
		}
		atEOF := err == io.EOF
		if atEOF && text == "" {
			break
		}
		num++
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
		p.status.TotalLines++

		if max := p.maxLineLength(); max >= 0 && len(text) > max {
			return p.fail(source, num, ErrLineTooLong)
		}
		if !utf8.ValidString(text) {
			return p.fail(source, num, ErrInvalidEncoding)
		}

		p.consume(src, NewLine(text, source, num))

		if atEOF {
			break
		}
	}

	p.finish(src)
	return nil
}

// ProcessPath processes a top-level path argument: a single file or a
// directory traversed recursively. Failures on the argument itself are
// always diagnosed, even with SuppressErrors; failures on files discovered
// during traversal are counted, diagnosed where allowed, and skipped.
func (p *Parser) ProcessPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		p.status.Errors++
		fmt.Fprintf(p.errOut, "%s: %v\n", path, err)
		return err
	}

	if !info.IsDir() {
		return p.processFile(path, true)
	}

	walkErr := filepath.WalkDir(path, func(sub string, d fs.DirEntry, err error) error {
		if err != nil {
			p.reportf("%s: %v", sub, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		// Per-file failures never abort the traversal.
		_ = p.processFile(sub, false)
		return nil
	})
	return walkErr
}

// processFile opens one file, scans it, and closes it on every path.
func (p *Parser) processFile(path string, topLevel bool) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		p.status.Errors++
		if topLevel {
			fmt.Fprintf(p.errOut, "%s: %v\n", path, err)
		} else if !p.opts.SuppressErrors {
			fmt.Fprintf(p.errOut, "%s: %v\n", path, err)
		}
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("close failed", logging.Path(path), logging.Err(cerr))
		}
	}()

	return p.ProcessReader(path, f)
}

// consume advances the state machine by one classified line.
func (p *Parser) consume(src *sourceState, line Line) {
	switch line.Kind {
	case KindBegin:
		p.noteMarker(src)
		if src.stack.Depth() == 0 && src.closedBlock && p.opts.PrintContent && p.printedAny {
			fmt.Fprintln(p.out)
		}
		src.stack.Push(line)

	case KindEnd:
		p.noteMarker(src)
		if _, ok := src.stack.Pop(); !ok {
			p.reportf("%s:%d: unmatched end marker", line.Source, line.Num)
			return
		}
		if src.stack.Depth() == 0 {
			src.closedBlock = true
		}

	case KindUnknown:
		p.noteMarker(src)
		p.reportf("%s:%d: unknown marker keyword %q", line.Source, line.Num, line.Keyword)

	case KindNone:
		if src.stack.Depth() == 0 {
			return // outside any block
		}
		if !p.opts.PrintContent {
			return
		}
		for _, chunk := range p.fmtr.Format(line.Text, line.Num) {
			fmt.Fprintln(p.out, chunk)
		}
		p.status.PrintedLines++
		p.printedAny = true
	}
}

// noteMarker emits the per-source header the first time any marker is seen.
// In list mode (PrintContent off) the header is the bare source name;
// otherwise it is only emitted when filename printing is on.
func (p *Parser) noteMarker(src *sourceState) {
	if src.emittedHeader {
		return
	}
	if !p.opts.PrintContent {
		fmt.Fprintln(p.out, src.source)
		src.emittedHeader = true
		return
	}
	if !p.opts.PrintFilenames {
		return
	}
	if p.printedAny {
		fmt.Fprintln(p.out)
	}
	fmt.Fprintf(p.out, "==> %s <==\n", src.source)
	p.printedAny = true
	src.emittedHeader = true
}

// finish runs the end-of-source invariant check: any still-open begin
// markers are reported once, in opening order.
func (p *Parser) finish(src *sourceState) {
	open := src.stack.Open()
	if len(open) == 0 {
		return
	}
	nums := make([]string, len(open))
	for i, l := range open {
		nums[i] = fmt.Sprintf("%d", l.Num)
	}
	p.reportf("%s: unterminated begin marker(s) opened at line(s) %s",
		src.source, strings.Join(nums, ", "))
}

// fail records a fatal per-source error and returns it annotated with the
// source position.
func (p *Parser) fail(source string, num int, err error) error {
	p.reportf("%s:%d: %v", source, num, err)
	return fmt.Errorf("%s:%d: %w", source, num, err)
}

// reportf counts an error, printing the diagnostic unless suppressed.
func (p *Parser) reportf(fmtStr string, args ...any) {
	p.status.Errors++
	if p.opts.SuppressErrors {
		return
	}
	fmt.Fprintf(p.errOut, fmtStr+"\n", args...)
}

func (p *Parser) maxLineLength() int {
	switch {
	case p.opts.MaxLineLength == 0:
		return DefaultMaxLineLength
	case p.opts.MaxLineLength < 0:
		return -1
	default:
		return p.opts.MaxLineLength
	}
}
