package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// ValidateView checks the structural rules the resolver relies on:
// every non-root component has a legal id, no id contains the separator
// and ids are unique within their naming container.
func ValidateView(view *domain.View) error {
	if view == nil || view.Root == nil {
		return fmt.Errorf("view has no root component")
	}

	var errors []string
	// seen maps a naming container to the ids declared directly in its namespace.
	seen := make(map[*domain.Component]map[string]string)

	view.Root.Walk(func(c *domain.Component) bool {
		if c.IsRoot() {
			return true
		}
		path := c.ClientID(view.Separator)

		switch {
		case c.ID == "":
			errors = append(errors, fmt.Sprintf("component under '%s' has an empty id", c.Parent().ClientID(view.Separator)))
			return true
		case strings.ContainsRune(c.ID, view.Separator):
			errors = append(errors, fmt.Sprintf("id '%s' contains the separator '%c'", c.ID, view.Separator))
		case !legalID(c.ID):
			errors = append(errors, fmt.Sprintf("id '%s' must start with a letter or '_' and contain only letters, digits, '-' or '_'", c.ID))
		}

		ns := c.NamingContainerOf()
		if ns == nil {
			ns = view.Root
		}
		if seen[ns] == nil {
			seen[ns] = make(map[string]string)
		}
		if _, dup := seen[ns][c.ID]; dup {
			errors = append(errors, fmt.Sprintf("duplicate id '%s' in naming container '%s'", path, ns.ID))
		}
		seen[ns][c.ID] = path
		return true
	})

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func legalID(id string) bool {
	for i, r := range id {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}
