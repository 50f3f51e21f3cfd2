package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"cascade/internal/diag"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          string
	Message       string
	Applicability Applicability
	Offset        int
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult aggregates applied fixes, skipped ones, and the patched buffer.
type ApplyResult struct {
	Applied   []AppliedFix
	Skipped   []SkippedFix
	Content   []byte
	EditCount int
}

// Candidate is a fix together with the marker it repairs.
type Candidate struct {
	Marker diag.Marker
	Fix    Fix
	order  int
}

// Collect builds the candidate fixes for markers, sorted by position.
func Collect(text []byte, markers []diag.Marker) []Candidate {
	cands, _ := gatherCandidates(text, markers)
	sortCandidates(cands)
	return cands
}

// Apply collects fixes from markers, selects a subset according to opts and
// applies them to a copy of text. text itself is never modified.
func Apply(text []byte, markers []diag.Marker, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
		Content: text,
	}

	candidates, buildSkips := gatherCandidates(text, markers)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	content, applied, skipped := applyCandidates(text, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skipped...)
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.Content = content
	for _, a := range applied {
		result.EditCount += a.EditCount
	}
	return result, nil
}

// gatherCandidates builds candidate fixes from markers. Fixes without an ID
// get one from the marker kind and offset; a repeated ID is skipped.
func gatherCandidates(text []byte, markers []diag.Marker) ([]Candidate, []SkippedFix) {
	cands := make([]Candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	// одинаковые маркеры (две незакрытые скобки в конце файла) различаются номером
	occurrences := make(map[[2]int]int)
	for _, m := range markers {
		key := [2]int{int(m.Kind), m.Offset}
		nth := occurrences[key]
		occurrences[key]++
		for idx, f := range Suggest(text, m) {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d", m.Kind.ID(), m.Offset, nth)
				if idx > 0 {
					f.ID += fmt.Sprintf(".%d", idx)
				}
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, Candidate{Marker: m, Fix: f, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders by marker position, then insertion order, kind,
// preference, ID and title.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		mi, mj := candidates[i].Marker, candidates[j].Marker
		if mi.Offset != mj.Offset {
			return mi.Offset < mj.Offset
		}
		if mi.End() != mj.End() {
			return mi.End() < mj.End()
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if mi.Kind != mj.Kind {
			return mi.Kind < mj.Kind
		}
		if candidates[i].Fix.IsPreferred != candidates[j].Fix.IsPreferred {
			return candidates[i].Fix.IsPreferred
		}
		if candidates[i].Fix.ID != candidates[j].Fix.ID {
			return candidates[i].Fix.ID < candidates[j].Fix.ID
		}
		return candidates[i].Fix.Title < candidates[j].Fix.Title
	})
}

func selectCandidates(candidates []Candidate, opts ApplyOptions) ([]Candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.Fix.ID == opts.TargetID {
				return []Candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]Candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.Fix.Applicability == AlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.Fix.ID,
				Title:  cand.Fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.Fix.Applicability),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		// первый безопасный, иначе первый вообще
		for _, cand := range candidates {
			if cand.Fix.Applicability == AlwaysSafe {
				return []Candidate{cand}, nil
			}
		}
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

func applyCandidates(text []byte, selected []Candidate) ([]byte, []AppliedFix, []SkippedFix) {
	working := append([]byte(nil), text...)
	var appliedEdits []Edit

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		edits := append([]Edit(nil), cand.Fix.Edits...)
		if conflictsWithExisting(appliedEdits, edits) {
			skipped = append(skipped, SkippedFix{
				ID:     cand.Fix.ID,
				Title:  cand.Fix.Title,
				Reason: "conflicts with previously applied edits",
			})
			continue
		}

		sort.SliceStable(edits, func(i, j int) bool {
			if edits[i].Offset == edits[j].Offset {
				return edits[i].End() > edits[j].End()
			}
			return edits[i].Offset > edits[j].Offset
		})

		staged := append([]byte(nil), working...)
		stagedApplied := append([]Edit(nil), appliedEdits...)
		var skipReason string
		for _, edit := range edits {
			start := edit.Offset + cumulativeDelta(stagedApplied, edit.Offset)
			end := edit.End() + cumulativeDelta(stagedApplied, edit.End())
			if start < 0 || end < start || end > len(staged) {
				skipReason = "edit span out of range"
				break
			}
			if edit.OldText != "" && string(staged[start:end]) != edit.OldText {
				skipReason = "existing text does not match expected content"
				break
			}
			suffix := append([]byte(nil), staged[end:]...)
			staged = append(append(staged[:start], edit.NewText...), suffix...)
			stagedApplied = insertEditSorted(stagedApplied, edit)
		}
		if skipReason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.Fix.ID, Title: cand.Fix.Title, Reason: skipReason})
			continue
		}

		working = staged
		appliedEdits = stagedApplied
		applied = append(applied, AppliedFix{
			ID:            cand.Fix.ID,
			Title:         cand.Fix.Title,
			Code:          cand.Marker.Kind.ID(),
			Message:       cand.Marker.Message,
			Applicability: cand.Fix.Applicability,
			Offset:        cand.Marker.Offset,
			EditCount:     len(edits),
		})
	}
	return working, applied, skipped
}

func conflictsWithExisting(existing, edits []Edit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits overlap as half-open intervals.
// Two insertions never conflict; an insertion conflicts with a replacement
// strictly containing its position.
func spansConflict(a, b Edit) bool {
	aStart, aEnd := a.Offset, a.End()
	bStart, bEnd := b.Offset, b.End()

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// cumulativeDelta is the shift of original position pos caused by edits
// already applied before it.
func cumulativeDelta(edits []Edit, pos int) int {
	delta := 0
	for _, e := range edits {
		if e.Offset > pos {
			break
		}
		if e.End() <= pos {
			delta += len(e.NewText) - e.Length
		}
	}
	return delta
}

func insertEditSorted(edits []Edit, edit Edit) []Edit {
	i := sort.Search(len(edits), func(i int) bool {
		if edits[i].Offset == edit.Offset {
			return edits[i].End() >= edit.End()
		}
		return edits[i].Offset > edit.Offset
	})
	edits = append(edits, Edit{})
	copy(edits[i+1:], edits[i:])
	edits[i] = edit
	return edits
}

// WriteFile replaces path with content, keeping its permissions.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
