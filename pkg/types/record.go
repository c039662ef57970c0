// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-fetcher pipeline.
package types

// Record is the extracted representation of one PubMed article.
// Nil pointer fields mean the value was absent from the source document.
type Record struct {
	// PMID is the PubMed identifier of the article.
	PMID *string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title *string `json:"title" yaml:"title"`

	// Date is "Year-Month-Day" as written in the source. It is set only when
	// all three parts are present.
	Date *string `json:"date" yaml:"date"`

	// Authors lists the last names of authors with a non-academic
	// affiliation, in document order. Index-aligned with Companies.
	Authors []string `json:"authors" yaml:"authors"`

	// Companies holds the affiliation text for each entry in Authors.
	Companies []string `json:"companies" yaml:"companies"`

	// Email is the corresponding author's address, when the source carries one.
	Email *string `json:"email" yaml:"email"`
}

// AddAuthor appends an author and their affiliation in one step so that
// Authors and Companies stay the same length.
func (r *Record) AddAuthor(lastName, affiliation string) {
	r.Authors = append(r.Authors, lastName)
	r.Companies = append(r.Companies, affiliation)
}

// StringOrEmpty dereferences s, returning "" for nil.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
