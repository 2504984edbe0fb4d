package domain

// PageID is the stable logical identifier of one page, independent of
// language or URL text. The full set of valid values is the constant block
// in pages.go; handlers never accept a PageID from user input.
type PageID string

// Paths maps each supported language to the page's URL template.
// Templates carry the language prefix and may contain named placeholders
// (e.g. "/en/in-person/cases/:caseID").
type Paths map[Language]string

// RouteNode is one entry of the declared route tree.
// A node is either a layout (Children set, no Paths) contributing structure
// only, or a page (Paths set, no Children) reachable at one URL per language.
// Validation rejects nodes that are both or neither.
type RouteNode struct {
	File     PageID      `json:"file"`
	Paths    Paths       `json:"paths,omitempty"`
	Children []RouteNode `json:"children,omitempty"`
}

// IsPage reports whether the node is a URL-bearing leaf.
func (n RouteNode) IsPage() bool {
	return len(n.Paths) > 0
}

// Layout declares a structural node grouping child routes.
func Layout(file PageID, children ...RouteNode) RouteNode {
	return RouteNode{File: file, Children: children}
}

// Page declares a leaf route with one URL template per language.
func Page(file PageID, paths Paths) RouteNode {
	return RouteNode{File: file, Paths: paths}
}
