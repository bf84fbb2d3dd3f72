package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var (
	assignmentKeywordRE = regexp.MustCompile(`(?i)(assignment|homework|hw|project|lab|paper|essay|problem\s*set|pset|quiz|midterm|final)`)
	segmentSplitRE      = regexp.MustCompile(`\s\|\s| - | \x{2014} | \x{2013} `)
	explicitClockRE     = regexp.MustCompile(`(?i)\d{1,2}:\d{2}|\d{1,2}\s*(am|pm)|noon|midnight`)
	duePrefixRE         = regexp.MustCompile(`(?i)due\s*:?\s*`)
)

var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ExtractAssignments scans syllabus text for lines mentioning an
// assignment keyword and pulls a due instant out of each with
// natural-language date parsing. A date with no explicit clock time
// is due end of day, 23:59. Duplicates collapse on (title, due).
func ExtractAssignments(text string, base time.Time) []model.Assignment {
	clean := strings.TrimSpace(strings.ReplaceAll(text, " ", " "))

	out := make([]model.Assignment, 0)
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(clean, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !assignmentKeywordRE.MatchString(line) {
			continue
		}

		segments := segmentSplitRE.Split(line, -1)
		for _, seg := range segments {
			chunk := strings.TrimSpace(seg)
			if chunk == "" {
				continue
			}
			if !assignmentKeywordRE.MatchString(chunk) {
				chunk = line
			}

			res, err := dateParser.Parse(chunk, base)
			if err != nil || res == nil {
				continue
			}
			due := res.Time
			if !explicitClockRE.MatchString(res.Text) {
				due = time.Date(due.Year(), due.Month(), due.Day(), 23, 59, 0, 0, due.Location())
			}

			title := duePrefixRE.ReplaceAllString(chunk, "")
			title = collapseSpaces(strings.Replace(title, res.Text, "", 1))
			title = strings.Trim(title, " ,.;:-")
			if title == "" {
				title = "Assignment"
			}

			key := strings.ToLower(title) + "|" + due.Format(time.RFC3339)
			if _, ok := seen[key]; ok {
				break
			}
			seen[key] = struct{}{}
			out = append(out, model.Assignment{
				ID:        model.NewID(),
				Title:     title,
				Due:       &due,
				Source:    line,
				CreatedAt: time.Now(),
			})
			break
		}
	}
	return out
}
