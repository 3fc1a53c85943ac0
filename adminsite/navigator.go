package adminsite

import "backoffice/models"

// Navigator computes the navigation list shown to a user. The admin site
// host calls this single seam; the default implementation below returns the
// registry-generated list, and the menu subsystem plugs in its own
// implementation at startup.
type Navigator interface {
	// AppList returns the sections for the user. A non-empty appLabel
	// restricts the list to that single app (single-app view).
	AppList(user *models.User, appLabel string) []AppEntry
}

// DefaultNavigator serves the registry's own list with no customization
type DefaultNavigator struct {
	Registry *Registry
}

func (n *DefaultNavigator) AppList(user *models.User, appLabel string) []AppEntry {
	return FilterByApp(n.Registry.AppList(user), appLabel)
}

// FilterByApp restricts a list to one app label; an empty label is a no-op
func FilterByApp(list []AppEntry, appLabel string) []AppEntry {
	if appLabel == "" {
		return list
	}
	filtered := make([]AppEntry, 0, 1)
	for _, entry := range list {
		if entry.AppLabel == appLabel {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
