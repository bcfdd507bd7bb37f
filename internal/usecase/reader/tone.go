package reader

import (
	"fmt"
	"strconv"
	"strings"

	"fluxactu/internal/domain/entity"
)

// Tone slider bounds and default.
const (
	MinSpice     = 0
	MaxSpice     = 100
	SpiceStep    = 5
	DefaultSpice = 60
)

// Suffixes appended to plain summaries by intensity.
const (
	suffixHigh     = " — TL;DR: potentiellement nerveux, plan de jeu requis."
	suffixModerate = " — En bref: intéressant, prudence."
	suffixLow      = " — À suivre sans se précipiter."
)

// Level names the suffix category selected by a spice value.
type Level string

const (
	LevelHigh     Level = "high"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
)

// ToneLevel returns the category for spice: above 70 is high, above 40 is moderate.
func ToneLevel(spice int) Level {
	switch {
	case spice > 70:
		return LevelHigh
	case spice > 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Tone appends the editorial suffix for spice to summary. An empty summary stays empty.
func Tone(summary string, spice int) string {
	if summary == "" {
		return ""
	}
	switch ToneLevel(spice) {
	case LevelHigh:
		return summary + suffixHigh
	case LevelModerate:
		return summary + suffixModerate
	default:
		return summary + suffixLow
	}
}

// DisplaySummary returns the AI summary verbatim when present, otherwise the toned summary.
func DisplaySummary(a entity.Article, spice int) string {
	if a.AISummary != "" {
		return a.AISummary
	}
	return Tone(a.Summary, spice)
}

// ParseSpice parses a slider value. Blank input yields DefaultSpice.
func ParseSpice(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSpice, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpice, raw)
	}
	if v < MinSpice || v > MaxSpice {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpice, v)
	}
	return v, nil
}
