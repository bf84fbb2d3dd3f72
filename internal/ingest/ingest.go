// Package ingest turns schedule and syllabus files into candidate
// records. Importers are lenient: malformed rows are skipped, never
// fatal, and missing optional fields are left for the planner's
// defaults to fill.
package ingest

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var ErrUnsupportedFormat = errors.New("ingest: unsupported file format")

// ParseScheduleFile dispatches on the file extension: .ics and .csv
// get their dedicated parsers, anything else the loose text parser.
func ParseScheduleFile(name string, data []byte, base time.Time) ([]model.Event, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ics":
		return ParseICS(strings.NewReader(string(data)))
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	case ".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg", ".heic":
		// Document and image extraction happens upstream; by the time
		// a file reaches this package it must already be text.
		return nil, ErrUnsupportedFormat
	default:
		return ParseText(string(data), base), nil
	}
}

var (
	trailingCodeRE = regexp.MustCompile(`\s*[\[(][^)\]]*[\])]\s*$`)
	parenTailRE    = regexp.MustCompile(`\(([^)]+)\)\s*$`)
	roomRE         = regexp.MustCompile(`(?i)\b(Room|Rm\.?|Bldg\.?|Building)\s+[A-Za-z0-9\- ]+\b`)
)

// cleanTitle strips trailing bracketed codes like "[FA25]" or "(LEC)".
func cleanTitle(summary string) string {
	return strings.TrimSpace(trailingCodeRE.ReplaceAllString(summary, ""))
}

// parenLocation pulls a location out of a trailing parenthetical,
// e.g. "Intro Cog Psych (Building 12, Room 201)".
func parenLocation(summary string) string {
	m := parenTailRE.FindStringSubmatch(summary)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
