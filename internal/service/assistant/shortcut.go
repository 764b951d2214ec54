package assistant

import (
	"strings"

	"github.com/sandevgo/askfolio/internal/config"
)

const (
	RouteContact  = "contact"
	RouteEmployer = "employer"
	RouteRAG      = "rag"
)

type shortcut struct {
	route    string
	triggers []string
	answer   string
}

func shortcutsFor(p config.Profile) []shortcut {
	return []shortcut{
		{route: RouteContact, triggers: lowerAll(p.Contact.Triggers), answer: p.Contact.Answer},
		{route: RouteEmployer, triggers: lowerAll(p.Employer.Triggers), answer: p.Employer.Answer},
	}
}

// match is a substring test on the lowercased question. Contact wins over employer.
func match(shortcuts []shortcut, question string) (shortcut, bool) {
	q := strings.ToLower(question)
	for _, s := range shortcuts {
		for _, t := range s.triggers {
			if t != "" && strings.Contains(q, t) {
				return s, true
			}
		}
	}
	return shortcut{}, false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
