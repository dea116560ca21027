// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillpath/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintImprovementAreas outputs the weak skills derived from an assessment,
// highest priority first.
func (p *Printer) PrintImprovementAreas(areas []types.ImprovementArea) {
	if len(areas) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(areas), maxItemsToShow)
	for i := 0; i < count; i++ {
		area := areas[i]
		sb.WriteString(fmt.Sprintf("  • %s  score %.0f  priority %.2f\n",
			area.DisplayName, area.CurrentScore, area.Priority))
	}
	if len(areas) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(areas)-maxItemsToShow))
	}

	p.printBox("IMPROVEMENT AREAS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResources outputs the top recommendations with their composite
// scores and the sub-scores behind them.
func (p *Printer) PrintRankedResources(resources []types.RankedResource) {
	if len(resources) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(resources), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := resources[i]
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, r.Resource.Title, r.Resource.Type))
		sb.WriteString(fmt.Sprintf("   score %.3f  (sim %.2f, skill %.2f, quality %.2f)\n",
			r.Score, r.Similarity, r.SkillMatch, r.Quality))
		if r.Enhancement != nil && r.Enhancement.Reason != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Enhancement.Reason))
		}
	}
	if len(resources) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(resources)-maxItemsToShow))
	}

	p.printBox("RANKED RESOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearningPath outputs the goal counts per time horizon and the
// templated summary.
func (p *Printer) PrintLearningPath(path *types.LearningPath) {
	if path == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:   %s\n", path.Job.Title))
	sb.WriteString(fmt.Sprintf("Goals: %d short, %d mid, %d long\n",
		path.GoalCount(types.TermShort), path.GoalCount(types.TermMid), path.GoalCount(types.TermLong)))
	sb.WriteString("\n")

	for _, term := range []types.TermBucket{types.TermShort, types.TermMid, types.TermLong} {
		for _, goal := range path.Goals[term] {
			sb.WriteString(fmt.Sprintf("  • [%s] %s (%d resources)\n",
				term, goal.DisplayName, len(goal.Resources)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(path.Summary)

	p.printBox("LEARNING PATH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStage outputs a one-line progress marker for a pipeline stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(stage, message string, count int) {
	if count > 0 {
		fmt.Fprintf(p.out, "▸ %-9s %s (%d)\n", stage, message, count)
		return
	}
	fmt.Fprintf(p.out, "▸ %-9s %s\n", stage, message)
}
