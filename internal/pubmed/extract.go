// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// academicPattern matches affiliations treated as academic. It is a plain
// substring match, so "Institutes of Acme Pharma" is excluded too.
var academicPattern = regexp.MustCompile(`(?i)university|institute`)

// correspondingMarker is the CorrespondingAuthor value that flags an author.
const correspondingMarker = "Y"

// Extract parses an EFetch XML document into one Record per PubmedArticle
// found below the root element, at any depth. A document without articles
// yields an empty slice. Malformed XML, including content after the root
// element, is returned as an error.
func Extract(doc []byte, log zerolog.Logger) ([]types.Record, error) {
	articles, err := decodeArticles(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}

	records := make([]types.Record, 0, len(articles))
	for _, a := range articles {
		r := toRecord(a)
		log.Debug().
			Str("pmid", types.StringOrEmpty(r.PMID)).
			Int("authors", len(r.Authors)).
			Bool("email", r.Email != nil).
			Msg("Extracted article")
		records = append(records, r)
	}
	return records, nil
}

// decodeArticles walks the whole document, decoding each PubmedArticle
// element below the root. It fails on a missing root, a second root, or
// non-whitespace text outside the root.
func decodeArticles(doc []byte) ([]pubmedArticle, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	var articles []pubmedArticle
	depth := 0
	sawRoot := false

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return nil, fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
			}
			if depth > 0 && t.Name.Local == "PubmedArticle" {
				var a pubmedArticle
				if err := d.DecodeElement(&a, &t); err != nil {
					return nil, err
				}
				articles = append(articles, a)
				continue
			}
			sawRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("unexpected text outside root element")
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("no root element")
	}
	return articles, nil
}

// IsAcademic reports whether an affiliation matches the academic pattern.
func IsAcademic(affiliation string) bool {
	return academicPattern.MatchString(affiliation)
}

func toRecord(a pubmedArticle) types.Record {
	mc := a.Citation
	r := types.Record{
		PMID:  mc.PMID.ptr(),
		Title: mc.Article.Title.ptr(),
	}

	if d := mc.Article.PubDate; d != nil && d.Year != "" && d.Month != "" && d.Day != "" {
		r.Date = types.StringPtr(d.Year + "-" + d.Month + "-" + d.Day)
	}

	for _, au := range mc.Article.Authors {
		aff := au.affiliation()
		if aff == "" || IsAcademic(aff) {
			continue
		}
		r.AddAuthor(au.LastName, aff)
	}

	if ca := correspondingAuthor(mc.Article.Authors); ca != nil {
		if email := ca.email(); email != "" {
			r.Email = types.StringPtr(email)
		}
	}

	return r
}

// correspondingAuthor returns the first author flagged as corresponding, or nil.
func correspondingAuthor(authors []pubmedAuthor) *pubmedAuthor {
	for i := range authors {
		if authors[i].CorrespondingAuthor == correspondingMarker {
			return &authors[i]
		}
	}
	return nil
}

// EFetch XML structures.
type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    *xmlText   `xml:"PMID"`
	Article xmlArticle `xml:"Article"`
}

type xmlArticle struct {
	Title   *xmlText       `xml:"ArticleTitle"`
	PubDate *xmlPubDate    `xml:"Journal>JournalIssue>PubDate"`
	Authors []pubmedAuthor `xml:"AuthorList>Author"`
}

type xmlPubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type pubmedAuthor struct {
	LastName            string               `xml:"LastName"`
	CorrespondingAuthor string               `xml:"CorrespondingAuthor"`
	AffiliationInfo     []xmlAffiliationInfo `xml:"AffiliationInfo"`
}

type xmlAffiliationInfo struct {
	Affiliation *xmlText `xml:"Affiliation"`
	AuthorEmail *xmlText `xml:"AuthorEmail"`
}

// affiliation returns the text of the author's first Affiliation element.
func (a pubmedAuthor) affiliation() string {
	for _, info := range a.AffiliationInfo {
		if info.Affiliation != nil {
			return info.Affiliation.Text
		}
	}
	return ""
}

// email returns the text of the author's first AuthorEmail element.
func (a pubmedAuthor) email() string {
	for _, info := range a.AffiliationInfo {
		if info.AuthorEmail != nil {
			return info.AuthorEmail.Text
		}
	}
	return ""
}

// xmlText collects all character data inside an element, including text
// nested in inline markup such as <i> or <sup> in titles.
type xmlText struct {
	Text string
}

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				t.Text = b.String()
				return nil
			}
			depth--
		}
	}
}

func (t *xmlText) ptr() *string {
	if t == nil {
		return nil
	}
	return types.StringPtr(t.Text)
}
