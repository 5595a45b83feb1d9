// Package feed filters, sorts and partitions the static blog collection the
// way the public site renders it.
package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll is the sentinel category meaning "no category filter".
const FilterAll = "all"

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortTitleAsc  SortMode = "title-asc"
	SortTitleDesc SortMode = "title-desc"
)

// Entry is one post in the static collection. Field names follow the
// historical blogs.json document rather than the server model.
type Entry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    []string `json:"category"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Link        string   `json:"link"`
	Featured    bool     `json:"featured"`
	Referenced  []string `json:"referenced"`
}

type Collection struct {
	Blogs []Entry `json:"blogs"`
}

// State is the full input of one recompute: the current search term,
// category filter and sort mode. Zero values are not meaningful; use
// DefaultState.
type State struct {
	Search string
	Filter string
	Sort   SortMode
}

func DefaultState() State {
	return State{Search: "", Filter: FilterAll, Sort: SortNewest}
}

// Reset returns the state to its defaults ("clear all").
func (s *State) Reset() {
	*s = DefaultState()
}

// Result is everything the presentation layer needs: the two display
// regions, the match count, and the flags distinguishing "nothing loaded"
// from "nothing matched".
type Result struct {
	Featured []Entry `json:"featured"`
	Posts    []Entry `json:"posts"`
	Count    int     `json:"count"`
	Filtered bool    `json:"filtered"`
	NoResult bool    `json:"noResults"`
	NoData   bool    `json:"noData"`
}

// Load reads the collection from disk once at startup.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blog collection: %w", err)
	}

	var collection Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to parse blog collection: %w", err)
	}
	return &collection, nil
}

// Recompute runs the whole pipeline: search and category predicates ANDed,
// stable sort, then partition into featured and non-featured regions. The
// source slice is never mutated.
func Recompute(entries []Entry, state State) Result {
	if len(entries) == 0 {
		return Result{Featured: []Entry{}, Posts: []Entry{}, NoData: true}
	}

	search := strings.ToLower(strings.TrimSpace(state.Search))
	filtered := search != "" || state.Filter != FilterAll

	matched := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if matchesSearch(entry, search) && matchesFilter(entry, state.Filter) {
			matched = append(matched, entry)
		}
	}

	sortEntries(matched, state.Sort)

	result := Result{
		Featured: make([]Entry, 0, len(matched)),
		Posts:    make([]Entry, 0, len(matched)),
		Count:    len(matched),
		Filtered: filtered,
		NoResult: filtered && len(matched) == 0,
	}

	// A featured post renders only in the featured region, never both.
	for _, entry := range matched {
		if entry.Featured {
			result.Featured = append(result.Featured, entry)
		} else {
			result.Posts = append(result.Posts, entry)
		}
	}

	return result
}

func matchesSearch(entry Entry, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Description), search) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	for _, category := range entry.Category {
		if strings.Contains(strings.ToLower(category), search) {
			return true
		}
	}
	return false
}

func matchesFilter(entry Entry, filter string) bool {
	if filter == FilterAll || filter == "" {
		return true
	}
	for _, category := range entry.Category {
		if category == filter {
			return true
		}
	}
	return false
}

func sortEntries(entries []Entry, mode SortMode) {
	switch mode {
	case SortOldest:
		sort.SliceStable(entries, func(i, j int) bool {
			return parseDate(entries[i].Date).Before(parseDate(entries[j].Date))
		})
	case SortTitleAsc:
		collator := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return collator.CompareString(entries[i].Title, entries[j].Title) < 0
		})
	case SortTitleDesc:
		collator := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return collator.CompareString(entries[i].Title, entries[j].Title) > 0
		})
	default: // SortNewest
		sort.SliceStable(entries, func(i, j int) bool {
			return parseDate(entries[i].Date).After(parseDate(entries[j].Date))
		})
	}
}

func parseDate(value string) time.Time {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Time{}
}
