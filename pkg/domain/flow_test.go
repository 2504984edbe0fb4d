package domain_test

import (
	"testing"

	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearFlow() domain.FlowDefinition {
	return domain.FlowDefinition{
		ID:      "test-flow",
		Initial: "start",
		States: map[domain.StateName]domain.StateNode{
			"start": {On: map[domain.Event]domain.StateName{
				domain.EventNext: "middle",
			}},
			"middle": {On: map[domain.Event]domain.StateName{
				domain.EventNext:   "end",
				domain.EventPrev:   "start",
				domain.EventCancel: "start",
			}},
			"end": {On: map[domain.Event]domain.StateName{
				domain.EventPrev:   "middle",
				domain.EventCancel: "start",
			}},
		},
		Routes: map[domain.StateName]domain.PageID{
			"start":  domain.PageInPersonIndex,
			"middle": domain.PageInPersonPrivacyStatement,
			"end":    domain.PageInPersonReview,
		},
	}
}

func TestApply_DeclaredTransitions(t *testing.T) {
	flow := linearFlow()

	next, err := flow.Apply("start", domain.EventNext)
	require.NoError(t, err)
	assert.Equal(t, domain.StateName("middle"), next)

	back, err := flow.Apply("middle", domain.EventPrev)
	require.NoError(t, err)
	assert.Equal(t, domain.StateName("start"), back)

	cancelled, err := flow.Apply("end", domain.EventCancel)
	require.NoError(t, err)
	assert.Equal(t, flow.Initial, cancelled)
}

func TestApply_UndeclaredPairIsRejected(t *testing.T) {
	flow := linearFlow()

	// prev in the initial state must not move the actor
	_, err := flow.Apply("start", domain.EventPrev)
	var actionErr *domain.UnrecognizedActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, domain.StateName("start"), actionErr.State)
	assert.Equal(t, domain.EventPrev, actionErr.Event)

	// unknown state is the same condition
	_, err = flow.Apply("nowhere", domain.EventNext)
	assert.ErrorAs(t, err, &actionErr)
}

func TestTerminal(t *testing.T) {
	flow := linearFlow()

	assert.False(t, flow.Terminal("start"))
	assert.False(t, flow.Terminal("middle"))
	assert.True(t, flow.Terminal("end"))
	assert.True(t, flow.Terminal("nowhere"))
}

func TestParseEvent(t *testing.T) {
	for _, raw := range []string{"next", "prev", "cancel"} {
		ev, err := domain.ParseEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.Event(raw), ev)
	}

	_, err := domain.ParseEvent("submit")
	var actionErr *domain.UnrecognizedActionError
	assert.ErrorAs(t, err, &actionErr)
}

func TestSnapshot_CloneIsolation(t *testing.T) {
	flow := linearFlow()
	snap := domain.NewSnapshot(flow)
	snap.Context.Data["name"] = "original"

	clone := snap.Clone()
	clone.Value = "middle"
	clone.Context.Data["name"] = "mutated"
	clone.Context.Routes["start"] = domain.PageCaseIndex

	assert.Equal(t, flow.Initial, snap.Value)
	assert.Equal(t, "original", snap.Context.Data["name"])
	assert.Equal(t, domain.PageInPersonIndex, snap.Context.Routes["start"])
}

func TestSnapshot_DecodeData(t *testing.T) {
	snap := domain.NewSnapshot(linearFlow())
	// Simulate what a JSON round trip leaves behind: untyped maps.
	snap.Context.Data["applicant"] = map[string]any{
		"given_name": "Marie",
		"restarted":  true,
	}

	var out struct {
		Applicant struct {
			GivenName string `mapstructure:"given_name"`
			Restarted bool   `mapstructure:"restarted"`
		} `mapstructure:"applicant"`
	}
	require.NoError(t, snap.DecodeData(&out))
	assert.Equal(t, "Marie", out.Applicant.GivenName)
	assert.True(t, out.Applicant.Restarted)
}

func TestLanguageOf(t *testing.T) {
	lang, err := domain.LanguageOf("/en/in-person")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEN, lang)

	lang, err = domain.LanguageOf("/fr/demande-en-personne/revision")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageFR, lang)

	_, err = domain.LanguageOf("/de/irgendwo")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)

	_, err = domain.LanguageOf("/")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}
