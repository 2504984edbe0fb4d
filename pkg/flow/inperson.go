// Package flow holds the wizard flow definitions of the application.
package flow

import "github.com/parcours-dev/parcours/pkg/domain"

// Step order of the in-person application wizard.
const (
	StateStart                     domain.StateName = "start"
	StatePrivacyStatement          domain.StateName = "privacy-statement"
	StateRequestDetails            domain.StateName = "request-details"
	StatePrimaryIdentityDocument   domain.StateName = "primary-identity-document"
	StateSecondaryIdentityDocument domain.StateName = "secondary-identity-document"
	StateCurrentName               domain.StateName = "current-name"
	StatePersonalInformation       domain.StateName = "personal-information"
	StateBirthDetails              domain.StateName = "birth-details"
	StateParentDetails             domain.StateName = "parent-details"
	StatePreviousSIN               domain.StateName = "previous-sin"
	StateContactInformation        domain.StateName = "contact-information"
	StateReview                    domain.StateName = "review"
)

// InPerson builds the in-person application flow: a linear next/prev chain
// from start to review, with cancel aborting to start from every step.
// The review step is terminal; completion events beyond it belong to the
// case-management system, not this flow.
func InPerson() domain.FlowDefinition {
	order := []domain.StateName{
		StateStart,
		StatePrivacyStatement,
		StateRequestDetails,
		StatePrimaryIdentityDocument,
		StateSecondaryIdentityDocument,
		StateCurrentName,
		StatePersonalInformation,
		StateBirthDetails,
		StateParentDetails,
		StatePreviousSIN,
		StateContactInformation,
		StateReview,
	}

	states := make(map[domain.StateName]domain.StateNode, len(order))
	for i, state := range order {
		on := make(map[domain.Event]domain.StateName)
		if i+1 < len(order) {
			on[domain.EventNext] = order[i+1]
		}
		if i > 0 {
			on[domain.EventPrev] = order[i-1]
			on[domain.EventCancel] = order[0]
		}
		states[state] = domain.StateNode{On: on}
	}

	return domain.FlowDefinition{
		ID:      "in-person",
		Initial: StateStart,
		States:  states,
		Routes: map[domain.StateName]domain.PageID{
			StateStart:                     domain.PageInPersonIndex,
			StatePrivacyStatement:          domain.PageInPersonPrivacyStatement,
			StateRequestDetails:            domain.PageInPersonRequestDetails,
			StatePrimaryIdentityDocument:   domain.PageInPersonPrimaryIdentityDocument,
			StateSecondaryIdentityDocument: domain.PageInPersonSecondaryIdentityDocument,
			StateCurrentName:               domain.PageInPersonCurrentName,
			StatePersonalInformation:       domain.PageInPersonPersonalInformation,
			StateBirthDetails:              domain.PageInPersonBirthDetails,
			StateParentDetails:             domain.PageInPersonParentDetails,
			StatePreviousSIN:               domain.PageInPersonPreviousSIN,
			StateContactInformation:        domain.PageInPersonContactInformation,
			StateReview:                    domain.PageInPersonReview,
		},
	}
}
