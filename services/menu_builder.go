package services

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/adminsite"
	"backoffice/models"
)

// BuildError wraps any unexpected failure during menu building, carrying the
// scope and config identifiers for diagnosis. Lookup misses are not errors:
// they silently drop the item.
type BuildError struct {
	ScopeID  string
	ConfigID string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("menu build failed for scope %s config %s: %v", e.ScopeID, e.ConfigID, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// RouteResolver resolves a named route to a path. adminsite.ErrRouteNotFound
// means "fall back to the literal URL"; any other error aborts the build.
type RouteResolver interface {
	Resolve(name string) (string, error)
}

// BuildAppList expands the config's ordered items into navigation sections,
// matching model items against the user's accessible app dict and resolving
// url items through the route table. The returned sections keep item order
// and first-seen section metadata.
func BuildAppList(user *models.User, config *models.MenuConfig, appDict map[string]adminsite.AppEntry, routes RouteResolver) ([]adminsite.AppEntry, error) {
	if config == nil {
		return nil, nil
	}

	keys := make([]string, 0)
	sections := make(map[string]*adminsite.AppEntry)

	appendEntry := func(key string, defaults adminsite.AppEntry, entry adminsite.ModelEntry) {
		section, seen := sections[key]
		if !seen {
			defaults.Models = nil
			section = &defaults
			sections[key] = section
			keys = append(keys, key)
		}
		section.Models = append(section.Models, entry)
	}

	for _, item := range config.OrderedItems() {
		if !item.VisibleTo(user) {
			continue
		}

		switch item.ItemType {
		case models.ItemTypeModel:
			key, defaults, entry, ok := buildModelEntry(item, appDict)
			if !ok {
				continue
			}
			appendEntry(key, defaults, entry)
		case models.ItemTypeURL:
			key, defaults, entry, ok, err := buildURLEntry(item, routes)
			if err != nil {
				return nil, &BuildError{ScopeID: config.ScopeID, ConfigID: config.ID, Err: err}
			}
			if !ok {
				continue
			}
			appendEntry(key, defaults, entry)
		default:
			// unreachable for persisted items; dropped rather than fatal
			continue
		}
	}

	list := make([]adminsite.AppEntry, 0, len(keys))
	for _, key := range keys {
		list = append(list, *sections[key])
	}
	return list, nil
}

// buildModelEntry matches a model item against the app dict. A missing app or
// model means the resource is unregistered or invisible to this user: skip.
func buildModelEntry(item *models.MenuItem, appDict map[string]adminsite.AppEntry) (string, adminsite.AppEntry, adminsite.ModelEntry, bool) {
	appInfo, found := appDict[item.AppLabel]
	if !found {
		return "", adminsite.AppEntry{}, adminsite.ModelEntry{}, false
	}

	var entry adminsite.ModelEntry
	matched := false
	for _, candidate := range appInfo.Models {
		if modelIdentifier(candidate) == item.ModelName {
			entry = candidate // struct copy, safe to mutate
			matched = true
			break
		}
	}
	if !matched {
		return "", adminsite.AppEntry{}, adminsite.ModelEntry{}, false
	}

	if item.Label != "" {
		entry.Name = item.Label
	}

	if item.Section != "" {
		slug := adminsite.Slugify(item.Section)
		if slug == "" {
			slug = item.Section
		}
		defaults := adminsite.AppEntry{
			Name:           item.Section,
			AppLabel:       slug,
			AppURL:         "#",
			HasModulePerms: true,
		}
		return "app:" + item.Section, defaults, entry, true
	}

	defaults := appInfo
	return "app:" + item.AppLabel, defaults, entry, true
}

// buildURLEntry resolves a url item into a read-only pseudo-model entry.
// Unresolvable items (unknown route, no literal fallback) are skipped.
func buildURLEntry(item *models.MenuItem, routes RouteResolver) (string, adminsite.AppEntry, adminsite.ModelEntry, bool, error) {
	var url string
	if item.URLName != "" && routes != nil {
		resolved, err := routes.Resolve(item.URLName)
		if err == nil {
			url = resolved
		} else if !errors.Is(err, adminsite.ErrRouteNotFound) {
			return "", adminsite.AppEntry{}, adminsite.ModelEntry{}, false, err
		}
		// ErrRouteNotFound falls through to the literal URL
	}
	if url == "" {
		url = item.AbsoluteURL
	}
	if url == "" {
		return "", adminsite.AppEntry{}, adminsite.ModelEntry{}, false, nil
	}

	label := item.Label
	if label == "" {
		label = item.URLName
	}
	if label == "" {
		label = item.AbsoluteURL
	}

	sectionName := item.Section
	sectionURL := "#"
	if sectionName == "" {
		sectionName = "Links"
	} else {
		// an explicitly named link section points at its first item
		sectionURL = url
	}

	sectionSlug := adminsite.Slugify(sectionName)
	if sectionSlug == "" {
		sectionSlug = "links"
	}
	defaults := adminsite.AppEntry{
		Name:           sectionName,
		AppLabel:       sectionSlug,
		AppURL:         sectionURL,
		HasModulePerms: true,
	}

	objectName := adminsite.Slugify(label)
	if objectName == "" {
		objectName = label
	}
	entry := adminsite.ModelEntry{
		Name:       label,
		ObjectName: objectName,
		Perms:      adminsite.ModelPerms{View: true},
		AdminURL:   url,
		ViewOnly:   true,
	}
	return "link:" + sectionName, defaults, entry, true, nil
}

// modelIdentifier returns the identifier a registry entry is matched by:
// the registered lowercase name, falling back to the lowercased type name
// for entries built without one
func modelIdentifier(entry adminsite.ModelEntry) string {
	if entry.ModelName != "" {
		return entry.ModelName
	}
	return strings.ToLower(entry.ObjectName)
}
