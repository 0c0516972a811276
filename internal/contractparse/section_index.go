package contractparse

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var (
	clauseHeadingRe = regexp.MustCompile(`(?im)^[ \t]*(?:điều|dieu)[ \t]+(\d{1,2})(?:[^\d]|$)`)
	subHeadingRe    = regexp.MustCompile(`(?m)^[ \t]*(\d{1,2})\.(\d{1,2})(?:[^\d]|$)`)
)

type heading struct {
	key   string
	start int
}

// SectionIndex records clause boundaries once per document and serves
// bounded sub-texts by clause number. A clause that is not in the document
// is reported explicitly instead of falling back silently.
type SectionIndex struct {
	text     string
	maxSpan  int
	clauses  map[int]int
	headings []heading
}

func NewSectionIndex(text string, maxSpan int) *SectionIndex {
	idx := &SectionIndex{
		text:    text,
		maxSpan: maxSpan,
		clauses: make(map[int]int),
	}

	for _, m := range clauseHeadingRe.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		// the first heading wins; later ones are usually cross references
		if _, seen := idx.clauses[n]; seen {
			continue
		}
		idx.clauses[n] = m[0]
		idx.headings = append(idx.headings, heading{key: strconv.Itoa(n), start: m[0]})
	}

	sort.Slice(idx.headings, func(i, j int) bool { return idx.headings[i].start < idx.headings[j].start })
	return idx
}

func (idx *SectionIndex) Text() string { return idx.text }

// Section returns clause n up to the next clause heading, or at most
// maxSpan runes when it is the last one.
func (idx *SectionIndex) Section(n int) (string, bool) {
	start, ok := idx.clauses[n]
	if !ok {
		return "", false
	}

	end := -1
	for _, h := range idx.headings {
		if h.start > start {
			end = h.start
			break
		}
	}
	if end < 0 {
		return window(idx.text, start, idx.maxSpan), true
	}
	return idx.text[start:end], true
}

// Sub returns sub-clause "n.m" (for example 3.3). It is looked up inside
// clause n when that clause exists and in the whole text otherwise.
func (idx *SectionIndex) Sub(n, m int) (string, bool) {
	scope, ok := idx.Section(n)
	if !ok {
		scope = idx.text
	}

	major := strconv.Itoa(n)
	var matches [][]int
	for _, sm := range subHeadingRe.FindAllStringSubmatchIndex(scope, -1) {
		if scope[sm[2]:sm[3]] == major {
			matches = append(matches, sm)
		}
	}

	minor := strconv.Itoa(m)
	for i, sm := range matches {
		if scope[sm[4]:sm[5]] != minor {
			continue
		}
		end := len(scope)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		return window(scope[sm[0]:end], 0, idx.maxSpan), true
	}
	return "", false
}

// Clauses lists the clause numbers found, in document order.
func (idx *SectionIndex) Clauses() []string {
	out := make([]string, 0, len(idx.headings))
	for _, h := range idx.headings {
		out = append(out, h.key)
	}
	return out
}

func (idx *SectionIndex) String() string {
	return fmt.Sprintf("SectionIndex%v", idx.Clauses())
}
