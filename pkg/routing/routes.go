package routing

import "github.com/parcours-dev/parcours/pkg/domain"

// Tree declares every routed page of the in-person application.
//
// Templates carry the mandatory language prefix; FindByPath and ResolveURL
// operate on these exact strings, so the declaration here is the single
// source of truth for the bilingual URL surface.
func Tree() []domain.RouteNode {
	return []domain.RouteNode{
		domain.Layout(domain.PageProtectedLayout,
			domain.Page(domain.PageInPersonIndex, domain.Paths{
				domain.LanguageEN: "/en/in-person",
				domain.LanguageFR: "/fr/demande-en-personne",
			}),
			domain.Page(domain.PageInPersonPrivacyStatement, domain.Paths{
				domain.LanguageEN: "/en/in-person/privacy-statement",
				domain.LanguageFR: "/fr/demande-en-personne/declaration-de-confidentialite",
			}),
			domain.Page(domain.PageInPersonRequestDetails, domain.Paths{
				domain.LanguageEN: "/en/in-person/request-details",
				domain.LanguageFR: "/fr/demande-en-personne/details-de-la-demande",
			}),
			domain.Page(domain.PageInPersonPrimaryIdentityDocument, domain.Paths{
				domain.LanguageEN: "/en/in-person/primary-identity-document",
				domain.LanguageFR: "/fr/demande-en-personne/piece-didentite-principale",
			}),
			domain.Page(domain.PageInPersonSecondaryIdentityDocument, domain.Paths{
				domain.LanguageEN: "/en/in-person/secondary-identity-document",
				domain.LanguageFR: "/fr/demande-en-personne/piece-didentite-secondaire",
			}),
			domain.Page(domain.PageInPersonCurrentName, domain.Paths{
				domain.LanguageEN: "/en/in-person/current-name",
				domain.LanguageFR: "/fr/demande-en-personne/nom-actuel",
			}),
			domain.Page(domain.PageInPersonPersonalInformation, domain.Paths{
				domain.LanguageEN: "/en/in-person/personal-information",
				domain.LanguageFR: "/fr/demande-en-personne/renseignements-personnels",
			}),
			domain.Page(domain.PageInPersonBirthDetails, domain.Paths{
				domain.LanguageEN: "/en/in-person/birth-details",
				domain.LanguageFR: "/fr/demande-en-personne/details-de-naissance",
			}),
			domain.Page(domain.PageInPersonParentDetails, domain.Paths{
				domain.LanguageEN: "/en/in-person/parent-details",
				domain.LanguageFR: "/fr/demande-en-personne/renseignements-sur-les-parents",
			}),
			domain.Page(domain.PageInPersonPreviousSIN, domain.Paths{
				domain.LanguageEN: "/en/in-person/previous-sin",
				domain.LanguageFR: "/fr/demande-en-personne/nas-precedent",
			}),
			domain.Page(domain.PageInPersonContactInformation, domain.Paths{
				domain.LanguageEN: "/en/in-person/contact-information",
				domain.LanguageFR: "/fr/demande-en-personne/coordonnees",
			}),
			domain.Page(domain.PageInPersonReview, domain.Paths{
				domain.LanguageEN: "/en/in-person/review",
				domain.LanguageFR: "/fr/demande-en-personne/revision",
			}),
			domain.Page(domain.PageCaseIndex, domain.Paths{
				domain.LanguageEN: "/en/cases",
				domain.LanguageFR: "/fr/dossiers",
			}),
			domain.Page(domain.PageCaseDetail, domain.Paths{
				domain.LanguageEN: "/en/cases/:caseID",
				domain.LanguageFR: "/fr/dossiers/:caseID",
			}),
		),
	}
}
