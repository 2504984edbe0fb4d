package routing

import (
	"fmt"
	"strings"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// CheckTree verifies the structural invariants of a declared route tree:
// unique file ids, both languages on every page, templates prefixed with
// their own language, and no node that is both page and layout.
//
// It is meant to run at startup (or from the validate command) so that
// configuration defects abort the process instead of surfacing as broken
// URLs deep inside a request.
func CheckTree(tree []domain.RouteNode) error {
	seen := make(map[domain.PageID]bool)
	var errs []string

	var walk func(nodes []domain.RouteNode)
	walk = func(nodes []domain.RouteNode) {
		for _, node := range nodes {
			if node.File == "" {
				errs = append(errs, "node with empty file id")
			}
			if node.IsPage() && len(node.Children) > 0 {
				errs = append(errs, fmt.Sprintf("node %q declares both paths and children", node.File))
			}
			if !node.IsPage() && len(node.Children) == 0 {
				errs = append(errs, fmt.Sprintf("node %q declares neither paths nor children", node.File))
			}

			if node.IsPage() {
				if seen[node.File] {
					errs = append(errs, fmt.Sprintf("duplicate file id %q", node.File))
				}
				seen[node.File] = true

				for _, lang := range domain.Languages() {
					template, ok := node.Paths[lang]
					if !ok || template == "" {
						errs = append(errs, fmt.Sprintf("page %q missing %s path", node.File, lang))
						continue
					}
					if !strings.HasPrefix(template, "/"+string(lang)+"/") && template != "/"+string(lang) {
						errs = append(errs, fmt.Sprintf("page %q: %s template %q lacks its language prefix", node.File, lang, template))
					}
				}
				for lang := range node.Paths {
					if _, err := domain.ParseLanguage(string(lang)); err != nil {
						errs = append(errs, fmt.Sprintf("page %q declares unsupported language %q", node.File, lang))
					}
				}
			}

			walk(node.Children)
		}
	}
	walk(tree)

	if len(errs) > 0 {
		return fmt.Errorf("invalid route tree (%d defects):\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}

// CheckFlow verifies a flow definition against a resolver:
// the initial state exists, every declared and reachable state is routed to
// a resolvable page, every non-terminal state has an outward transition, and
// cancel is declared on every non-initial state and lands on the initial
// state (the global "abort to start" guarantee).
func CheckFlow(flow domain.FlowDefinition, resolver *Resolver) error {
	var errs []string

	if _, ok := flow.States[flow.Initial]; !ok {
		errs = append(errs, fmt.Sprintf("initial state %q not declared", flow.Initial))
	}

	// Crawl from the initial state so unreachable declarations surface too.
	reachable := make(map[domain.StateName]bool)
	queue := []domain.StateName{flow.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, target := range flow.States[current].On {
			if _, ok := flow.States[target]; !ok {
				errs = append(errs, fmt.Sprintf("state %q transitions to undeclared state %q", current, target))
				continue
			}
			if !reachable[target] {
				queue = append(queue, target)
			}
		}
	}

	for state, node := range flow.States {
		page, ok := flow.Routes[state]
		if !ok {
			errs = append(errs, fmt.Sprintf("state %q has no route entry", state))
		} else if resolver.FindByFile(page) == nil {
			errs = append(errs, fmt.Sprintf("state %q routes to unknown page %q", state, page))
		}

		if !reachable[state] {
			errs = append(errs, fmt.Sprintf("state %q is unreachable from %q", state, flow.Initial))
		}

		if len(node.On) == 0 {
			errs = append(errs, fmt.Sprintf("state %q declares no outward transitions", state))
		}

		if state == flow.Initial {
			continue
		}
		target, ok := node.On[domain.EventCancel]
		if !ok {
			errs = append(errs, fmt.Sprintf("state %q does not declare cancel", state))
		} else if target != flow.Initial {
			errs = append(errs, fmt.Sprintf("state %q cancels to %q instead of %q", state, target, flow.Initial))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid flow %q (%d defects):\n- %s", flow.ID, len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
