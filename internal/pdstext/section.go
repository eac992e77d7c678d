package pdstext

import "regexp"

// Section is a contiguous slice of normalized text with its source offsets.
type Section struct {
	Text  string
	Start int
	End   int
}

// Segment locates a named section. Anchors are tried in order and the first
// one that matches anywhere in text wins; the section starts right after
// the matched anchor. Within a window of at most maxLen characters the
// section ends at the earliest offset any stop pattern matches, or at the
// window end. Returns false if no anchor matches.
func Segment(text string, anchors, stops []*regexp.Regexp, maxLen int) (Section, bool) {
	start := -1
	for _, a := range anchors {
		if loc := a.FindStringIndex(text); loc != nil {
			start = loc[1]
			break
		}
	}
	if start < 0 {
		return Section{}, false
	}

	end := len(text)
	if maxLen > 0 && start+maxLen < end {
		end = start + maxLen
	}
	window := text[start:end]

	cut := len(window)
	for _, s := range stops {
		if loc := s.FindStringIndex(window); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return Section{Text: window[:cut], Start: start, End: start + cut}, true
}
