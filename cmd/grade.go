package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/currimap/internal/progress"
)

// parseGrade parses a grade in [0, progress.MaxGrade].
func parseGrade(raw string) (float64, error) {
	g, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse grade %q: %w", raw, err)
	}
	if math.IsNaN(g) || g < 0 || g > progress.MaxGrade {
		return 0, fmt.Errorf("grade %g out of range [0, %d]", g, progress.MaxGrade)
	}
	return g, nil
}
