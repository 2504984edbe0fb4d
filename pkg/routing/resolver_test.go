package routing

import (
	"net/url"
	"testing"

	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(template string) map[string]string {
	params := make(map[string]string)
	for _, name := range placeholders(template) {
		params[name] = "abc-123"
	}
	return params
}

// Round-trip identity: for every page and both languages, resolving a URL
// and looking it back up lands on the same logical page.
func TestResolver_Bijection(t *testing.T) {
	resolver := NewResolver(Tree())

	var pages []domain.RouteNode
	var collect func(nodes []domain.RouteNode)
	collect = func(nodes []domain.RouteNode) {
		for _, n := range nodes {
			if n.IsPage() {
				pages = append(pages, n)
			}
			collect(n.Children)
		}
	}
	collect(resolver.Tree())
	require.NotEmpty(t, pages)

	for _, page := range pages {
		for _, lang := range domain.Languages() {
			url, err := resolver.ResolveURL(page.File, lang, testParams(page.Paths[lang]), nil)
			require.NoError(t, err, "resolve %s/%s", page.File, lang)

			found := resolver.FindByPath(url, lang)
			require.NotNil(t, found, "reverse lookup %s", url)
			assert.Equal(t, page.File, found.File)
		}
	}
}

func TestFindByPath_AnyLanguage(t *testing.T) {
	resolver := NewResolver(Tree())

	// Language-agnostic reverse lookup, used by history/back navigation.
	found := resolver.FindByPath("/fr/demande-en-personne/revision")
	require.NotNil(t, found)
	assert.Equal(t, domain.PageInPersonReview, found.File)

	// Trailing slashes are normalized away.
	found = resolver.FindByPath("/en/in-person/review/")
	require.NotNil(t, found)
	assert.Equal(t, domain.PageInPersonReview, found.File)

	// Restricting the language excludes the other template.
	assert.Nil(t, resolver.FindByPath("/fr/demande-en-personne/revision", domain.LanguageEN))

	assert.Nil(t, resolver.FindByPath("/en/no-such-page"))
}

func TestGetByFile_MissIsInternalError(t *testing.T) {
	resolver := NewResolver(Tree())

	page, err := resolver.GetByFile(domain.PageInPersonIndex)
	require.NoError(t, err)
	assert.Equal(t, domain.PageInPersonIndex, page.File)

	_, err = resolver.GetByFile("protected/in-person/forged")
	var notFound *domain.RouteNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.PageID("protected/in-person/forged"), notFound.File)

	_, err = resolver.GetByPath("/en/no-such-page")
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveURL_ParamsAndQuery(t *testing.T) {
	resolver := NewResolver(Tree())

	got, err := resolver.ResolveURL(domain.PageCaseDetail, domain.LanguageFR,
		map[string]string{"caseID": "0042"}, url.Values{"tid": {"abc123"}})
	require.NoError(t, err)
	assert.Equal(t, "/fr/dossiers/0042?tid=abc123", got)

	// Missing required placeholder.
	_, err = resolver.ResolveURL(domain.PageCaseDetail, domain.LanguageEN, nil, nil)
	var tmplErr *domain.TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, "caseID", tmplErr.Param)
	assert.False(t, tmplErr.Surplus)

	// Parameter that matches no placeholder.
	_, err = resolver.ResolveURL(domain.PageInPersonReview, domain.LanguageEN,
		map[string]string{"caseID": "0042"}, nil)
	require.ErrorAs(t, err, &tmplErr)
	assert.True(t, tmplErr.Surplus)
}

func TestTemplateMatch(t *testing.T) {
	assert.True(t, match("/en/cases/:caseID", "/en/cases/0042"))
	assert.False(t, match("/en/cases/:caseID", "/en/cases"))
	assert.False(t, match("/en/cases/:caseID", "/en/cases/0042/extra"))
	assert.False(t, match("/en/cases/:caseID", "/en/cases/"))
}

func TestChiPattern(t *testing.T) {
	assert.Equal(t, "/en/cases/{caseID}", ChiPattern("/en/cases/:caseID"))
	assert.Equal(t, "/en/in-person", ChiPattern("/en/in-person"))
}
