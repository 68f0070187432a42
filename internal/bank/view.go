// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

// Filter is the AND-combined predicate a view applies:
// subject membership, difficulty membership, and tag subset (a question
// must carry every selected tag). An empty subject or difficulty
// selection means no filtering on that axis.
type Filter struct {
	Subjects     []Subject
	Difficulties []Difficulty
	Tags         []string
}

// Match reports whether q passes every clause.
func (f Filter) Match(q *AnnotatedQuestion) bool {
	if len(f.Subjects) > 0 {
		found := false
		for _, s := range f.Subjects {
			if q.Subject == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Difficulties) > 0 {
		found := false
		for _, d := range f.Difficulties {
			if q.Difficulty == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, t := range f.Tags {
		if !q.HasTag(t) {
			return false
		}
	}
	return true
}

// Page is one materialized slice of the filtered collection.
type Page struct {
	Questions  []AnnotatedQuestion `json:"questions"`
	Number     int                 `json:"page"`
	Size       int                 `json:"page_size"`
	TotalItems int                 `json:"total_items"`
	TotalPages int                 `json:"total_pages"`
}

// View owns filter and page state over an annotated collection. It only
// ever reads the collection: every materialization derives a fresh
// slice, so concurrent edits cannot leave a view aliasing stale storage.
//
// Pages are 1-indexed. Changing any filter or the page size resets the
// page to 1. An explicit page number outside the known valid range is
// rejected and the previous page kept. Reverting, not clamping: a typo
// stays visible as a no-op instead of silently landing elsewhere.
type View struct {
	filter     Filter
	page       int
	pageSize   int
	totalPages int
}

// NewView creates a view at page 1 with the given page size.
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &View{page: 1, pageSize: pageSize}
}

// Filter returns the current filter state.
func (v *View) Filter() Filter { return v.filter }

// Page returns the current page number.
func (v *View) Page() int { return v.page }

// PageSize returns the current page size.
func (v *View) PageSize() int { return v.pageSize }

// SetSubjects replaces the subject selection and resets to page 1.
func (v *View) SetSubjects(subjects ...Subject) {
	v.filter.Subjects = subjects
	v.page = 1
}

// SetDifficulties replaces the difficulty selection and resets to page 1.
func (v *View) SetDifficulties(difficulties ...Difficulty) {
	v.filter.Difficulties = difficulties
	v.page = 1
}

// SetTags replaces the tag selection and resets to page 1.
func (v *View) SetTags(tags ...string) {
	v.filter.Tags = tags
	v.page = 1
}

// SetPageSize changes the page size and resets to page 1.
func (v *View) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	v.pageSize = size
	v.page = 1
}

// SetPage moves to page n if it is within the range observed by the
// last Materialize. Out-of-range requests are rejected and the current
// page kept.
func (v *View) SetPage(n int) bool {
	if n < 1 || n > v.totalPages {
		return false
	}
	v.page = n
	return true
}

// Materialize filters qs and slices out the current page.
func (v *View) Materialize(qs []AnnotatedQuestion) Page {
	var filtered []AnnotatedQuestion
	for i := range qs {
		if v.filter.Match(&qs[i]) {
			filtered = append(filtered, qs[i])
		}
	}

	total := len(filtered)
	v.totalPages = (total + v.pageSize - 1) / v.pageSize

	start := (v.page - 1) * v.pageSize
	end := start + v.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Questions:  filtered[start:end],
		Number:     v.page,
		Size:       v.pageSize,
		TotalItems: total,
		TotalPages: v.totalPages,
	}
}
