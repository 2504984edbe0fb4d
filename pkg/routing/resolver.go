package routing

import (
	"net/url"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// Resolver answers bidirectional lookups over a declared route tree:
// logical page id to localized URL (for redirects and links) and concrete
// path back to logical page id (for language switching and resumption).
type Resolver struct {
	tree []domain.RouteNode
}

// NewResolver wraps a declared route tree. The tree is expected to have
// passed CheckTree; NewResolver itself performs no validation so that
// lookups stay cheap and allocation free.
func NewResolver(tree []domain.RouteNode) *Resolver {
	return &Resolver{tree: tree}
}

// Tree returns the underlying route tree.
func (r *Resolver) Tree() []domain.RouteNode {
	return r.tree
}

// FindByFile returns the page declared with the given id, or nil.
// File ids are unique by construction, so first match is only match.
func (r *Resolver) FindByFile(file domain.PageID) *domain.RouteNode {
	return findByFile(r.tree, file)
}

func findByFile(nodes []domain.RouteNode, file domain.PageID) *domain.RouteNode {
	for i := range nodes {
		if nodes[i].IsPage() && nodes[i].File == file {
			return &nodes[i]
		}
		if found := findByFile(nodes[i].Children, file); found != nil {
			return found
		}
	}
	return nil
}

// FindByPath returns the page whose template matches the concrete path, or
// nil. When langs is empty, both languages are checked, supporting
// "this URL means this page regardless of language" reverse lookups.
func (r *Resolver) FindByPath(path string, langs ...domain.Language) *domain.RouteNode {
	if len(langs) == 0 {
		langs = domain.Languages()
	}
	return findByPath(r.tree, normalizePath(path), langs)
}

func findByPath(nodes []domain.RouteNode, path string, langs []domain.Language) *domain.RouteNode {
	for i := range nodes {
		for _, lang := range langs {
			if template, ok := nodes[i].Paths[lang]; ok && match(template, path) {
				return &nodes[i]
			}
		}
		if found := findByPath(nodes[i].Children, path, langs); found != nil {
			return found
		}
	}
	return nil
}

// GetByFile is FindByFile for ids that must exist: a miss means the compiled
// route tree and its callers disagree, which is a build defect, so the error
// is the internal RouteNotFoundError rather than a user-facing condition.
func (r *Resolver) GetByFile(file domain.PageID) (*domain.RouteNode, error) {
	if page := r.FindByFile(file); page != nil {
		return page, nil
	}
	return nil, &domain.RouteNotFoundError{File: file}
}

// GetByPath is FindByPath with a miss converted into RouteNotFoundError.
func (r *Resolver) GetByPath(path string, langs ...domain.Language) (*domain.RouteNode, error) {
	if page := r.FindByPath(path, langs...); page != nil {
		return page, nil
	}
	return nil, &domain.RouteNotFoundError{Path: path}
}

// ResolveURL materializes the concrete localized URL for a logical page.
// Every redirect target and internal link funnels through here; it is
// deterministic and pure, and the caller always supplies the language
// explicitly (no hidden locale negotiation).
func (r *Resolver) ResolveURL(file domain.PageID, lang domain.Language, params map[string]string, query url.Values) (string, error) {
	page, err := r.GetByFile(file)
	if err != nil {
		return "", err
	}

	template, ok := page.Paths[lang]
	if !ok {
		return "", &domain.RouteNotFoundError{File: file}
	}

	path, err := substitute(template, params)
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path, nil
}
