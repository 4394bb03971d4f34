package casestudy

import (
	"fmt"
	"math"
	"strconv"
)

// KPI is a before/after metric with a display unit. Before may be zero;
// the delta calculator guards the division.
type KPI struct {
	Name   string  `json:"name"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Unit   string  `json:"unit"`
}

type KPIDelta struct {
	Absolute   float64 `json:"absolute"`
	Percentage float64 `json:"percentage"`
	Formatted  string  `json:"formatted"`
}

// ComputeKPIDelta computes the absolute and percentage change for a KPI and a
// Markdown-ready summary line. When Before is zero the percentage is reported
// as 0 regardless of After. The percentage is rounded half away from zero.
func ComputeKPIDelta(kpi KPI) KPIDelta {
	absolute := kpi.After - kpi.Before
	percentage := 0.0
	if kpi.Before != 0 {
		percentage = (absolute / kpi.Before) * 100
	}
	sign := ""
	if absolute >= 0 {
		sign = "+"
	}
	formatted := fmt.Sprintf("%s%s → %s%s (**%s%d%%**)",
		FormatAmount(kpi.Before), kpi.Unit,
		FormatAmount(kpi.After), kpi.Unit,
		sign, int(math.Round(percentage)),
	)
	return KPIDelta{Absolute: absolute, Percentage: percentage, Formatted: formatted}
}

// FormatAmount renders without a trailing ".0" so whole values read as "10",
// not "10.0".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
