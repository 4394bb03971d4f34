package fallback

import (
	"fmt"
	"strings"
)

// Document renders the deterministic case-study Markdown used when no
// generation key is configured. The section order (TL;DR, Problem, Solution,
// Results, Key Takeaways), the ## heading level and the blockquoted KPI line
// are load-bearing: the HTML renderer keys its components off them.
func Document(d Digest) string {
	delta := deltaLine(d.KPI)

	goal := d.Goal
	if goal == "" {
		goal = "design improvements"
	}
	timeframe := d.Timeframe
	if timeframe == "" {
		timeframe = "Not specified"
	}
	problem := d.Problem
	if problem == "" {
		problem = "Challenge identified"
	}

	solution := "Solution implemented"
	if len(d.Steps) > 0 {
		lines := make([]string, 0, len(d.Steps))
		for i, step := range d.Steps {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
		}
		solution = strings.Join(lines, "\n")
	}

	kpiName := "Primary KPI"
	if d.KPI != nil && d.KPI.Name != "" {
		kpiName = d.KPI.Name
	}
	secondary := d.Secondary
	if secondary == "" {
		secondary = "Additional positive outcomes observed"
	}

	return fmt.Sprintf(`# %s

## TL;DR
- %s case study showcasing %s
- Primary metric: %s
- Timeframe: %s

## Problem
%s

## Solution
%s

## Results
> **%s**: %s

%s

## Key Takeaways
- Data-driven approach validated design decisions
- User-centered methodology led to measurable improvements
- Continued iteration recommended for further optimization`,
		d.Title,
		strings.ToUpper(d.TemplateID),
		goal,
		delta,
		timeframe,
		problem,
		solution,
		kpiName,
		delta,
		secondary,
	)
}
