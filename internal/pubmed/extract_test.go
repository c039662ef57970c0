// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const sampleEFetchXML = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">12345</PMID>
      <Article PubModel="Print">
        <Journal>
          <Title>Journal of Tests</Title>
          <JournalIssue CitedMedium="Internet">
            <PubDate><Year>2021</Year><Month>5</Month></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Test Study</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Smith</LastName>
            <ForeName>Jane</ForeName>
            <CorrespondingAuthor>Y</CorrespondingAuthor>
            <AffiliationInfo>
              <Affiliation>Acme Biotech</Affiliation>
              <AuthorEmail>s@acme.com</AuthorEmail>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <LastName>Doe</LastName>
            <ForeName>John</ForeName>
            <AffiliationInfo>
              <Affiliation>MIT University</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestExtractRoundTripScenario(t *testing.T) {
	records, err := Extract([]byte(sampleEFetchXML), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	require.NotNil(t, r.PMID)
	assert.Equal(t, "12345", *r.PMID)
	require.NotNil(t, r.Title)
	assert.Equal(t, "Test Study", *r.Title)
	assert.Nil(t, r.Date, "day is missing, date must be nil")
	assert.Equal(t, []string{"Smith"}, r.Authors)
	assert.Equal(t, []string{"Acme Biotech"}, r.Companies)
	require.NotNil(t, r.Email)
	assert.Equal(t, "s@acme.com", *r.Email)
}

func TestExtractNoArticles(t *testing.T) {
	records, err := Extract([]byte(`<PubmedArticleSet></PubmedArticleSet>`), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty body", ""},
		{"unclosed element", "<PubmedArticleSet><PubmedArticle>"},
		{"not xml", `{"esearchresult": {}}`},
		{"unclosed element after root", `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID></MedlineCitation></PubmedArticle></PubmedArticleSet><oops`},
		{"second root element", `<PubmedArticleSet></PubmedArticleSet><PubmedArticleSet></PubmedArticleSet>`},
		{"text after root", `<PubmedArticleSet></PubmedArticleSet>trailing`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.doc), zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestExtractTrailingWhitespaceAndComments(t *testing.T) {
	doc := sampleEFetchXML + "\n<!-- generated -->\n"
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExtractFindsNestedArticles(t *testing.T) {
	doc := `<Wrapper><PubmedArticleSet>
		<PubmedArticle><MedlineCitation><PMID>11</PMID></MedlineCitation></PubmedArticle>
	</PubmedArticleSet><Other><PubmedArticle><MedlineCitation><PMID>22</PMID></MedlineCitation></PubmedArticle></Other></Wrapper>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "11", types.StringOrEmpty(records[0].PMID))
	assert.Equal(t, "22", types.StringOrEmpty(records[1].PMID))
}

func TestExtractRootArticleIsNotCounted(t *testing.T) {
	doc := `<PubmedArticle><MedlineCitation><PMID>5</PMID></MedlineCitation></PubmedArticle>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractDateAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		pubDate string
		want    *string
	}{
		{"full date", "<Year>2021</Year><Month>May</Month><Day>7</Day>", types.StringPtr("2021-May-7")},
		{"numeric date kept verbatim", "<Year>2020</Year><Month>03</Month><Day>09</Day>", types.StringPtr("2020-03-09")},
		{"missing day", "<Year>2021</Year><Month>5</Month>", nil},
		{"missing month", "<Year>2021</Year><Day>5</Day>", nil},
		{"year only", "<Year>2021</Year>", nil},
		{"medline date", "<MedlineDate>2019 Jan-Feb</MedlineDate>", nil},
		{"empty day", "<Year>2021</Year><Month>5</Month><Day></Day>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID><Article>
				<Journal><JournalIssue><PubDate>` + tt.pubDate + `</PubDate></JournalIssue></Journal>
				</Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`
			records, err := Extract([]byte(doc), zerolog.Nop())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Date)
		})
	}
}

func TestExtractNoPubDate(t *testing.T) {
	doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID><Article>
		<ArticleTitle>No Journal</ArticleTitle></Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Date)
}

func TestExtractAffiliationFilter(t *testing.T) {
	doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>7</PMID><Article>
		<AuthorList>
			<Author><LastName>Alpha</LastName><AffiliationInfo><Affiliation>Pfizer Inc., New York</Affiliation></AffiliationInfo></Author>
			<Author><LastName>Beta</LastName><AffiliationInfo><Affiliation>Harvard UNIVERSITY</Affiliation></AffiliationInfo></Author>
			<Author><LastName>Gamma</LastName><AffiliationInfo><Affiliation>Broad Institute</Affiliation></AffiliationInfo></Author>
			<Author><LastName>Delta</LastName></Author>
			<Author><LastName>Epsilon</LastName><AffiliationInfo><Affiliation></Affiliation></AffiliationInfo></Author>
			<Author><LastName>Zeta</LastName><AffiliationInfo><Affiliation>Genentech</Affiliation></AffiliationInfo><AffiliationInfo><Affiliation>Stanford University</Affiliation></AffiliationInfo></Author>
			<Author><LastName>Eta</LastName><AffiliationInfo><Affiliation>Institutes of Acme Pharma</Affiliation></AffiliationInfo></Author>
		</AuthorList>
		</Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`

	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, []string{"Alpha", "Zeta"}, r.Authors)
	assert.Equal(t, []string{"Pfizer Inc., New York", "Genentech"}, r.Companies)
	assert.Equal(t, len(r.Authors), len(r.Companies))
	assert.Nil(t, r.Email)
}

func TestExtractCorrespondingAuthor(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		want    *string
	}{
		{
			name: "flagged author with email",
			authors: `<Author><LastName>A</LastName><AffiliationInfo><Affiliation>X Corp</Affiliation><AuthorEmail>a@x.com</AuthorEmail></AffiliationInfo></Author>
				<Author><LastName>B</LastName><CorrespondingAuthor>Y</CorrespondingAuthor><AffiliationInfo><Affiliation>Y Corp</Affiliation><AuthorEmail>b@y.com</AuthorEmail></AffiliationInfo></Author>`,
			want: types.StringPtr("b@y.com"),
		},
		{
			name:    "flagged author without email",
			authors: `<Author><LastName>B</LastName><CorrespondingAuthor>Y</CorrespondingAuthor><AffiliationInfo><Affiliation>Y Corp</Affiliation></AffiliationInfo></Author>`,
			want:    nil,
		},
		{
			name:    "email from academic author is still used",
			authors: `<Author><LastName>B</LastName><CorrespondingAuthor>Y</CorrespondingAuthor><AffiliationInfo><Affiliation>Oxford University</Affiliation><AuthorEmail>b@ox.ac.uk</AuthorEmail></AffiliationInfo></Author>`,
			want:    types.StringPtr("b@ox.ac.uk"),
		},
		{
			name:    "flag other than Y",
			authors: `<Author><LastName>B</LastName><CorrespondingAuthor>N</CorrespondingAuthor><AffiliationInfo><AuthorEmail>b@y.com</AuthorEmail></AffiliationInfo></Author>`,
			want:    nil,
		},
		{
			name: "first flagged author wins",
			authors: `<Author><LastName>A</LastName><CorrespondingAuthor>Y</CorrespondingAuthor></Author>
				<Author><LastName>B</LastName><CorrespondingAuthor>Y</CorrespondingAuthor><AffiliationInfo><AuthorEmail>b@y.com</AuthorEmail></AffiliationInfo></Author>`,
			want: nil,
		},
		{
			name:    "no authors",
			authors: ``,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID><Article><AuthorList>` +
				tt.authors + `</AuthorList></Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`
			records, err := Extract([]byte(doc), zerolog.Nop())
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Email)
		})
	}
}

func TestExtractMissingFieldsAreNil(t *testing.T) {
	doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><Article></Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Nil(t, r.PMID)
	assert.Nil(t, r.Title)
	assert.Nil(t, r.Date)
	assert.Nil(t, r.Email)
	assert.Empty(t, r.Authors)
	assert.Empty(t, r.Companies)
}

func TestExtractTitleWithInlineMarkup(t *testing.T) {
	doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>9</PMID><Article>
		<ArticleTitle>Role of <i>BRCA1</i> in repair</ArticleTitle>
		</Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Title)
	assert.Equal(t, "Role of BRCA1 in repair", *records[0].Title)
}

func TestExtractMultipleArticlesKeepsOrder(t *testing.T) {
	doc := `<PubmedArticleSet>
		<PubmedArticle><MedlineCitation><PMID>3</PMID></MedlineCitation></PubmedArticle>
		<PubmedArticle><MedlineCitation><PMID>1</PMID></MedlineCitation></PubmedArticle>
		<PubmedArticle><MedlineCitation><PMID>2</PMID></MedlineCitation></PubmedArticle>
	</PubmedArticleSet>`
	records, err := Extract([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, records, 3)

	var got []string
	for _, r := range records {
		got = append(got, types.StringOrEmpty(r.PMID))
	}
	assert.Equal(t, []string{"3", "1", "2"}, got)
}

func TestIsAcademic(t *testing.T) {
	tests := []struct {
		affiliation string
		want        bool
	}{
		{"Stanford University, CA", true},
		{"university of somewhere", true},
		{"National Cancer Institute", true},
		{"INSTITUTE for Health", true},
		{"Acme Biotech", false},
		{"Novartis AG", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.affiliation, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcademic(tt.affiliation))
		})
	}
}
