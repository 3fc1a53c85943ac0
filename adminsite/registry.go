package adminsite

import (
	"fmt"
	"sort"
	"strings"

	"backoffice/models"
)

// ModelPerms are the capability flags attached to one navigation entry
type ModelPerms struct {
	Add    bool `json:"add"`
	Change bool `json:"change"`
	Delete bool `json:"delete"`
	View   bool `json:"view"`
}

// ModelEntry is one row inside a navigation section
type ModelEntry struct {
	Name       string     `json:"name"`
	ObjectName string     `json:"object_name"`
	Perms      ModelPerms `json:"perms"`
	AdminURL   string     `json:"admin_url"`
	AddURL     string     `json:"add_url,omitempty"`
	ViewOnly   bool       `json:"view_only"`

	// ModelName is the registered lowercase identifier menu items match
	// against; not part of the rendered payload
	ModelName string `json:"-"`
}

// AppEntry is one section of the navigation list
type AppEntry struct {
	Name           string       `json:"name"`
	AppLabel       string       `json:"app_label"`
	AppURL         string       `json:"app_url"`
	HasModulePerms bool         `json:"has_module_perms"`
	Models         []ModelEntry `json:"models"`
}

// Model describes one resource registered with the admin site
type Model struct {
	// Name is the lowercase identifier used for menu matching (ex: "person")
	Name string
	// ObjectName is the exported type name (ex: "Person")
	ObjectName string
	// DisplayName is shown in the navigation (ex: "People")
	DisplayName string
}

type app struct {
	label       string
	displayName string
	models      []Model
}

// Registry is the explicit catalog of apps and models the admin site knows
// about. Handlers register their resources at startup; per-user access is
// computed from permission codenames of the "<app>.<action>_<model>" form.
type Registry struct {
	apps   map[string]*app
	labels []string
}

func NewRegistry() *Registry {
	return &Registry{apps: make(map[string]*app)}
}

// RegisterApp declares an app section with its display name. Registering the
// same label twice only updates the display name.
func (r *Registry) RegisterApp(label string, displayName string) {
	label = strings.ToLower(strings.TrimSpace(label))
	if existing, ok := r.apps[label]; ok {
		existing.displayName = displayName
		return
	}
	r.apps[label] = &app{label: label, displayName: displayName}
	r.labels = append(r.labels, label)
}

// RegisterModel attaches a model to a previously registered app; unknown apps
// are created with the label as display name
func (r *Registry) RegisterModel(appLabel string, model Model) {
	appLabel = strings.ToLower(strings.TrimSpace(appLabel))
	entry, ok := r.apps[appLabel]
	if !ok {
		r.RegisterApp(appLabel, appLabel)
		entry = r.apps[appLabel]
	}
	model.Name = strings.ToLower(strings.TrimSpace(model.Name))
	if model.DisplayName == "" {
		model.DisplayName = model.ObjectName
	}
	entry.models = append(entry.models, model)
}

// AppDict returns the accessible apps for the user, keyed by app label. Apps
// with no visible models are omitted, as are all apps for non-staff users.
func (r *Registry) AppDict(user *models.User) map[string]AppEntry {
	dict := make(map[string]AppEntry)
	if user == nil || !user.IsStaff {
		return dict
	}

	for _, label := range r.labels {
		entry := r.buildAppEntry(r.apps[label], user)
		if len(entry.Models) > 0 {
			dict[label] = entry
		}
	}
	return dict
}

// AppList returns the default ordered navigation list for the user: apps
// sorted by display name, models sorted by display name within each app
func (r *Registry) AppList(user *models.User) []AppEntry {
	dict := r.AppDict(user)
	list := make([]AppEntry, 0, len(dict))
	for _, entry := range dict {
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].AppLabel < list[j].AppLabel
	})
	return list
}

func (r *Registry) buildAppEntry(a *app, user *models.User) AppEntry {
	entry := AppEntry{
		Name:     a.displayName,
		AppLabel: a.label,
		AppURL:   fmt.Sprintf("/admin/%s/", a.label),
	}

	for _, model := range a.models {
		perms := ModelPerms{
			Add:    user.HasPerm(fmt.Sprintf("%s.add_%s", a.label, model.Name)),
			Change: user.HasPerm(fmt.Sprintf("%s.change_%s", a.label, model.Name)),
			Delete: user.HasPerm(fmt.Sprintf("%s.delete_%s", a.label, model.Name)),
			View:   user.HasPerm(fmt.Sprintf("%s.view_%s", a.label, model.Name)),
		}
		if !perms.Add && !perms.Change && !perms.Delete && !perms.View {
			continue
		}

		modelEntry := ModelEntry{
			Name:       model.DisplayName,
			ObjectName: model.ObjectName,
			ModelName:  model.Name,
			Perms:      perms,
			AdminURL:   fmt.Sprintf("/admin/%s/%s/", a.label, model.Name),
		}
		if perms.Add {
			modelEntry.AddURL = fmt.Sprintf("/admin/%s/%s/add/", a.label, model.Name)
		}
		entry.Models = append(entry.Models, modelEntry)
	}

	sort.Slice(entry.Models, func(i, j int) bool {
		return entry.Models[i].Name < entry.Models[j].Name
	})
	entry.HasModulePerms = len(entry.Models) > 0
	return entry
}
