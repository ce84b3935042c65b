package marker

import "fmt"

// Status accumulates counters across every source of a single run. It is
// created once per invocation, shared by reference, and never reset mid-run.
type Status struct {
	// TotalLines is the number of lines scanned.
	TotalLines int
	// PrintedLines is the number of content lines emitted.
	PrintedLines int
	// Errors is the number of errors encountered, fatal or not.
	Errors int
}

// Summary renders the end-of-run statistics line.
func (s *Status) Summary() string {
	return fmt.Sprintf("%d lines scanned, %d lines printed, %d errors",
		s.TotalLines, s.PrintedLines, s.Errors)
}
