package plan

import (
	"math"
	"sort"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

type BlockKind string

const (
	BlockKindTask  BlockKind = "task"
	BlockKindEvent BlockKind = "event"
	BlockKindBreak BlockKind = "break"
)

// Block is one timeline entry for a single day. Start and End are
// minutes since local midnight. Blocks are recomputed on every
// request and never persisted.
type Block struct {
	Title string
	Start int
	End   int
	Kind  BlockKind
}

const (
	// A single placement never exceeds MaxChunkMinutes; longer tasks
	// split across several blocks.
	MaxChunkMinutes = 90
	// Effective task duration is clamped to [MinTaskMinutes,MaxTaskMinutes].
	MinTaskMinutes = 15
	MaxTaskMinutes = 240
	// A chunk of BreakAfterMinutes or more earns a recovery break when
	// one still fits inside the source free block.
	BreakAfterMinutes = 50
	BreakMinutes      = 10

	defaultEstimateMinutes = 30
	eventBlockTitle        = "Calendar Event"
	breakBlockTitle        = "Break"
)

// Build computes the day's timeline: fixed events verbatim, then
// incomplete tasks packed greedily into the free minutes in urgency
// order (earliest due first, higher priority breaking ties), each
// task trying its preferred time-of-day window before the full day.
// A task that does not fit simply receives fewer minutes; the
// remainder is dropped without error. The only failure is a malformed
// window. Identical inputs always produce identical output.
func Build(tasks []model.Task, events []model.Event, day time.Time, w Window) ([]Block, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	minStart, maxEnd := w.MinStart(), w.MaxEnd()

	busy := Merge(Clamp(DayBusy(day, events, w), minStart, maxEnd))
	blocks := make([]Block, 0, len(busy)+len(tasks))
	for _, b := range busy {
		blocks = append(blocks, Block{Title: eventBlockTitle, Start: b.Start, End: b.End, Kind: BlockKindEvent})
	}

	free := Invert(busy, minStart, maxEnd)
	for _, t := range sortByUrgency(tasks) {
		remaining := effectiveMinutes(t)
		prefStart, prefEnd := t.TimeOfDay.Window()
		windows := [2]Span{{Start: prefStart, End: prefEnd}, {Start: minStart, End: maxEnd}}

		for _, win := range windows {
			for i := 0; i < len(free) && remaining > 0; i++ {
				fs, fe := free[i].Start, free[i].End
				s := max(fs, win.Start)
				e := min(fe, win.End)
				if e-s <= 0 {
					continue
				}

				chunk := min(remaining, e-s, MaxChunkMinutes)
				end := s + chunk
				blocks = append(blocks, Block{Title: t.Title, Start: s, End: end, Kind: BlockKindTask})
				remaining -= chunk

				if chunk >= BreakAfterMinutes && end+BreakMinutes <= fe {
					blocks = append(blocks, Block{Title: breakBlockTitle, Start: end, End: end + BreakMinutes, Kind: BlockKindBreak})
					fs = end + BreakMinutes
				} else {
					fs = end
				}

				if fs >= fe {
					free = append(free[:i], free[i+1:]...)
					i--
				} else {
					free[i] = Span{Start: fs, End: fe}
				}
			}
			if remaining <= 0 {
				break
			}
		}
	}

	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.End > b.Start {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// sortByUrgency filters out completed tasks and orders the rest by
// ascending due instant (no due date sorts last), then by descending
// priority weight. The sort is stable so same-urgency tasks keep
// their input order.
func sortByUrgency(tasks []model.Task) []model.Task {
	cand := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			cand = append(cand, t)
		}
	}
	sort.SliceStable(cand, func(i, j int) bool {
		di, dj := dueRank(cand[i]), dueRank(cand[j])
		if di != dj {
			return di < dj
		}
		return cand[i].Priority.Weight() > cand[j].Priority.Weight()
	})
	return cand
}

func dueRank(t model.Task) int64 {
	if t.Due == nil {
		return math.MaxInt64
	}
	return t.Due.UnixMilli()
}

func effectiveMinutes(t model.Task) int {
	est := t.EstimatedMinutes
	if est <= 0 {
		est = defaultEstimateMinutes
	}
	return min(MaxTaskMinutes, max(MinTaskMinutes, est))
}
