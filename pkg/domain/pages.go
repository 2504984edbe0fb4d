package domain

// Logical page identifiers for the in-person application.
//
// This is the closed constant set backing PageID: one constant per declared
// route, named after the page's position in the tree. Keeping the set closed
// means a PageID referenced by a flow definition is checked against the tree
// at startup, never at request time.
const (
	PageProtectedLayout PageID = "protected/layout"

	PageInPersonIndex                     PageID = "protected/in-person/index"
	PageInPersonPrivacyStatement          PageID = "protected/in-person/privacy-statement"
	PageInPersonRequestDetails            PageID = "protected/in-person/request-details"
	PageInPersonPrimaryIdentityDocument   PageID = "protected/in-person/primary-identity-document"
	PageInPersonSecondaryIdentityDocument PageID = "protected/in-person/secondary-identity-document"
	PageInPersonCurrentName               PageID = "protected/in-person/current-name"
	PageInPersonPersonalInformation       PageID = "protected/in-person/personal-information"
	PageInPersonBirthDetails              PageID = "protected/in-person/birth-details"
	PageInPersonParentDetails             PageID = "protected/in-person/parent-details"
	PageInPersonPreviousSIN               PageID = "protected/in-person/previous-sin"
	PageInPersonContactInformation        PageID = "protected/in-person/contact-information"
	PageInPersonReview                    PageID = "protected/in-person/review"

	PageCaseIndex  PageID = "protected/cases/index"
	PageCaseDetail PageID = "protected/cases/detail"
)
