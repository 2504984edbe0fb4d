package flow_test

import (
	"testing"

	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/parcours-dev/parcours/pkg/flow"
	"github.com/parcours-dev/parcours/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInPerson_PassesStartupChecks(t *testing.T) {
	def := flow.InPerson()
	resolver := routing.NewResolver(routing.Tree())

	require.NoError(t, routing.CheckTree(resolver.Tree()))
	require.NoError(t, routing.CheckFlow(def, resolver))
}

func TestInPerson_LinearNextChain(t *testing.T) {
	def := flow.InPerson()

	state := def.Initial
	visited := []domain.StateName{state}
	for !def.Terminal(state) {
		next, err := def.Apply(state, domain.EventNext)
		require.NoError(t, err)
		state = next
		visited = append(visited, state)
		require.LessOrEqual(t, len(visited), len(def.States), "next chain must not cycle")
	}

	assert.Equal(t, flow.StateReview, state)
	assert.Len(t, visited, len(def.States))

	// Walk all the way back.
	for state != def.Initial {
		prev, err := def.Apply(state, domain.EventPrev)
		require.NoError(t, err)
		state = prev
	}
}

// Global cancel invariant: every non-initial state cancels to the initial
// state in exactly one transition.
func TestInPerson_CancelFromEveryState(t *testing.T) {
	def := flow.InPerson()

	for state := range def.States {
		if state == def.Initial {
			_, err := def.Apply(state, domain.EventCancel)
			var actionErr *domain.UnrecognizedActionError
			assert.ErrorAs(t, err, &actionErr, "initial state declares no cancel")
			continue
		}
		target, err := def.Apply(state, domain.EventCancel)
		require.NoError(t, err, "cancel from %s", state)
		assert.Equal(t, def.Initial, target)
	}
}

func TestInPerson_EdgeStatesRejectOutOfRangeEvents(t *testing.T) {
	def := flow.InPerson()
	var actionErr *domain.UnrecognizedActionError

	_, err := def.Apply(flow.StateStart, domain.EventPrev)
	assert.ErrorAs(t, err, &actionErr)

	_, err = def.Apply(flow.StateReview, domain.EventNext)
	assert.ErrorAs(t, err, &actionErr)
}
