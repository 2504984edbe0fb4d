package routing

import (
	"strings"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// URL templates use ":name" path segments as placeholders
// (e.g. "/en/protected/cases/:caseID"). The placeholder set is part of the
// template's contract: substitution fails on a missing placeholder value and
// on a parameter that matches no placeholder.

// placeholders returns the placeholder names of a template in path order.
func placeholders(template string) []string {
	var names []string
	for _, seg := range strings.Split(template, "/") {
		if name, ok := strings.CutPrefix(seg, ":"); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// substitute fills every placeholder of the template from params.
func substitute(template string, params map[string]string) (string, error) {
	names := placeholders(template)

	seen := make(map[string]bool, len(names))
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		name, ok := strings.CutPrefix(seg, ":")
		if !ok || name == "" {
			continue
		}
		val, ok := params[name]
		if !ok || val == "" {
			return "", &domain.TemplateError{Template: template, Param: name}
		}
		segs[i] = val
		seen[name] = true
	}

	for param := range params {
		if !seen[param] {
			return "", &domain.TemplateError{Template: template, Param: param, Surplus: true}
		}
	}

	return strings.Join(segs, "/"), nil
}

// match reports whether a concrete path matches the template, with
// placeholders matching any single non-empty segment.
func match(template, path string) bool {
	tsegs := strings.Split(normalizePath(template), "/")
	psegs := strings.Split(normalizePath(path), "/")
	if len(tsegs) != len(psegs) {
		return false
	}
	for i, tseg := range tsegs {
		if name, ok := strings.CutPrefix(tseg, ":"); ok && name != "" {
			if psegs[i] == "" {
				return false
			}
			continue
		}
		if tseg != psegs[i] {
			return false
		}
	}
	return true
}

// normalizePath strips trailing slashes so "/en/in-person/" and
// "/en/in-person" name the same page.
func normalizePath(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimRight(path, "/")
}

// ChiPattern converts a template into the chi mux pattern syntax
// (":name" segments become "{name}"). Used by the HTTP adapter when
// mounting handlers at localized paths.
func ChiPattern(template string) string {
	segs := strings.Split(template, "/")
	for i, seg := range segs {
		if name, ok := strings.CutPrefix(seg, ":"); ok && name != "" {
			segs[i] = "{" + name + "}"
		}
	}
	return strings.Join(segs, "/")
}
