// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/points-engine/pkg/types"
)

// Matcher recognizes a section-boundary heading line. firstOfPage reports
// whether line is the first non-blank line of its page, for positional rules.
// On a match it returns the heading title and a specificity score; the
// longest matched text wins when several matchers claim the same line.
type Matcher interface {
	Match(line string, firstOfPage bool) (title string, specificity int, ok bool)
}

// literalMatcher matches lines beginning with a literal prefix,
// case-insensitively.
type literalMatcher struct {
	prefix string
}

func (m literalMatcher) Match(line string, _ bool) (string, int, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToUpper(trimmed), strings.ToUpper(m.prefix)) {
		return "", 0, false
	}
	return trimmed, len(m.prefix), true
}

// patternMatcher matches lines against a regular expression anchored at the
// start of the trimmed line. Specificity is the length of the matched text.
type patternMatcher struct {
	re *regexp.Regexp
}

func (m patternMatcher) Match(line string, _ bool) (string, int, bool) {
	trimmed := strings.TrimSpace(line)
	match := m.re.FindString(trimmed)
	if match == "" {
		return "", 0, false
	}
	return trimmed, len(match), true
}

// lineStartMatcher matches a literal prefix only on the first non-blank line
// of a page, for documents whose headings always open a page.
type lineStartMatcher struct {
	inner literalMatcher
}

func (m lineStartMatcher) Match(line string, firstOfPage bool) (string, int, bool) {
	if !firstOfPage {
		return "", 0, false
	}
	return m.inner.Match(line, firstOfPage)
}

// rankedMatcher pairs a Matcher with its tie-break rank.
type rankedMatcher struct {
	Matcher
	priority int
	order    int
}

// MarkerSet is a prioritized collection of matchers. It is immutable after
// construction and safe for concurrent use.
type MarkerSet struct {
	matchers []rankedMatcher
}

// CompileMarkers builds a MarkerSet from marker specs. Specs with lower
// Priority values win specificity ties; equal priorities keep list order.
func CompileMarkers(specs []types.MarkerSpec) (*MarkerSet, error) {
	set := &MarkerSet{}
	for i, spec := range specs {
		var m Matcher
		switch spec.Kind {
		case types.MarkerLiteral:
			m = literalMatcher{prefix: spec.Value}
		case types.MarkerPattern:
			re, err := regexp.Compile("^(?:" + spec.Value + ")")
			if err != nil {
				return nil, fmt.Errorf("compiling marker pattern %q: %w", spec.Value, err)
			}
			m = patternMatcher{re: re}
		case types.MarkerLineStart:
			m = lineStartMatcher{inner: literalMatcher{prefix: spec.Value}}
		default:
			return nil, fmt.Errorf("unknown marker kind %q", spec.Kind)
		}
		set.matchers = append(set.matchers, rankedMatcher{Matcher: m, priority: spec.Priority, order: i})
	}

	sort.SliceStable(set.matchers, func(i, j int) bool {
		return set.matchers[i].priority < set.matchers[j].priority
	})
	return set, nil
}

// DefaultMarkers returns the built-in marker set: "SECTION" and "POINTS LIST"
// label prefixes plus numbered headings such as "3.2 Controls".
func DefaultMarkers() *MarkerSet {
	set, err := CompileMarkers([]types.MarkerSpec{
		{Kind: types.MarkerLiteral, Value: "POINTS LIST"},
		{Kind: types.MarkerLiteral, Value: "SECTION"},
		{Kind: types.MarkerPattern, Value: `\d+(\.\d+)*[.)]?\s+\S`, Priority: 1},
	})
	if err != nil {
		// The built-in specs are constants; a compile failure is a bug.
		panic(err)
	}
	return set
}

// Match evaluates all matchers against line and returns the winning heading
// title. The longest matched text wins; priority and list order break ties.
func (s *MarkerSet) Match(line string, firstOfPage bool) (string, bool) {
	bestTitle := ""
	bestSpec := -1
	found := false
	for _, m := range s.matchers {
		title, spec, ok := m.Match(line, firstOfPage)
		if !ok {
			continue
		}
		if spec > bestSpec {
			bestTitle, bestSpec, found = title, spec, true
		}
	}
	return bestTitle, found
}
