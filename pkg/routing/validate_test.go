package routing

import (
	"testing"

	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTree_DeclaredTreeIsValid(t *testing.T) {
	require.NoError(t, CheckTree(Tree()))
}

func TestCheckTree_DuplicateFileID(t *testing.T) {
	tree := []domain.RouteNode{
		domain.Page("a", domain.Paths{domain.LanguageEN: "/en/a", domain.LanguageFR: "/fr/a"}),
		domain.Page("a", domain.Paths{domain.LanguageEN: "/en/b", domain.LanguageFR: "/fr/b"}),
	}
	err := CheckTree(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate file id "a"`)
}

func TestCheckTree_MissingLanguage(t *testing.T) {
	tree := []domain.RouteNode{
		domain.Page("a", domain.Paths{domain.LanguageEN: "/en/a"}),
	}
	err := CheckTree(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing fr path")
}

func TestCheckTree_WrongLanguagePrefix(t *testing.T) {
	tree := []domain.RouteNode{
		domain.Page("a", domain.Paths{
			domain.LanguageEN: "/en/a",
			domain.LanguageFR: "/en/a-fr",
		}),
	}
	err := CheckTree(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lacks its language prefix")
}

func TestCheckTree_EmptyLayout(t *testing.T) {
	err := CheckTree([]domain.RouteNode{{File: "empty"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither paths nor children")
}

func validFlow() domain.FlowDefinition {
	return domain.FlowDefinition{
		ID:      "valid",
		Initial: "start",
		States: map[domain.StateName]domain.StateNode{
			"start": {On: map[domain.Event]domain.StateName{domain.EventNext: "review"}},
			"review": {On: map[domain.Event]domain.StateName{
				domain.EventPrev:   "start",
				domain.EventCancel: "start",
			}},
		},
		Routes: map[domain.StateName]domain.PageID{
			"start":  domain.PageInPersonIndex,
			"review": domain.PageInPersonReview,
		},
	}
}

func TestCheckFlow_Valid(t *testing.T) {
	require.NoError(t, CheckFlow(validFlow(), NewResolver(Tree())))
}

func TestCheckFlow_UnroutedState(t *testing.T) {
	flow := validFlow()
	delete(flow.Routes, "review")
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `state "review" has no route entry`)
}

func TestCheckFlow_UnresolvablePage(t *testing.T) {
	flow := validFlow()
	flow.Routes["review"] = "protected/in-person/missing"
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "routes to unknown page")
}

func TestCheckFlow_MissingCancel(t *testing.T) {
	flow := validFlow()
	flow.States["review"] = domain.StateNode{
		On: map[domain.Event]domain.StateName{domain.EventPrev: "start"},
	}
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `state "review" does not declare cancel`)
}

func TestCheckFlow_CancelNotToInitial(t *testing.T) {
	flow := validFlow()
	flow.States["review"] = domain.StateNode{
		On: map[domain.Event]domain.StateName{
			domain.EventPrev:   "start",
			domain.EventCancel: "review",
		},
	}
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cancels to "review"`)
}

func TestCheckFlow_UndeclaredTransitionTarget(t *testing.T) {
	flow := validFlow()
	flow.States["start"] = domain.StateNode{
		On: map[domain.Event]domain.StateName{domain.EventNext: "nowhere"},
	}
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared state")
}

func TestCheckFlow_UnreachableState(t *testing.T) {
	flow := validFlow()
	flow.States["orphan"] = domain.StateNode{
		On: map[domain.Event]domain.StateName{domain.EventCancel: "start"},
	}
	flow.Routes["orphan"] = domain.PageCaseIndex
	err := CheckFlow(flow, NewResolver(Tree()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `state "orphan" is unreachable`)
}
