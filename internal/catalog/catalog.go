package catalog

import (
	"net/url"
	"strings"
)

// Uncategorized is the group key for apps whose grouping field is blank.
const Uncategorized = "Uncategorized"

// AppDescriptor describes one launchable app as served by the backend.
type AppDescriptor struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Category    string `json:"category,omitempty"`
	Folder      string `json:"folder,omitempty"`
	LaunchURL   string `json:"launchUrl,omitempty"`
}

// SameApp reports whether a and b name the same installed app. Names are
// only unique within a group, so the location fields take part too.
func (a AppDescriptor) SameApp(b AppDescriptor) bool {
	return a.Name == b.Name && a.Source == b.Source && a.Category == b.Category && a.Folder == b.Folder
}

// GroupBy selects the descriptor field used as folder key.
type GroupBy string

const (
	GroupBySource   GroupBy = "source"
	GroupByCategory GroupBy = "category"
)

// ParseGroupBy validates a user-supplied grouping name.
func ParseGroupBy(value string) (GroupBy, bool) {
	switch GroupBy(strings.ToLower(strings.TrimSpace(value))) {
	case GroupBySource:
		return GroupBySource, true
	case GroupByCategory:
		return GroupByCategory, true
	}
	return "", false
}

// Key returns the group key for app.
func (g GroupBy) Key(app AppDescriptor) string {
	var key string
	switch g {
	case GroupByCategory:
		key = app.Category
	default:
		key = app.Source
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Uncategorized
	}
	return key
}

// Grouped maps group keys to apps. Keys keep first-appearance order and apps
// keep load order within a group. The zero value is an empty catalog.
type Grouped struct {
	keys   []string
	groups map[string][]AppDescriptor
}

// Group buckets apps by the given key.
func Group(apps []AppDescriptor, by GroupBy) Grouped {
	g := Grouped{groups: make(map[string][]AppDescriptor)}
	for _, app := range apps {
		key := by.Key(app)
		if _, ok := g.groups[key]; !ok {
			g.keys = append(g.keys, key)
		}
		g.groups[key] = append(g.groups[key], app)
	}
	return g
}

// Keys returns the group keys in display order.
func (g Grouped) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Apps returns a copy of the apps in group key.
func (g Grouped) Apps(key string) []AppDescriptor {
	apps := g.groups[key]
	out := make([]AppDescriptor, len(apps))
	copy(out, apps)
	return out
}

// Has reports whether key names a group in the catalog.
func (g Grouped) Has(key string) bool {
	_, ok := g.groups[key]
	return ok
}

// Count returns the number of apps in group key.
func (g Grouped) Count(key string) int {
	return len(g.groups[key])
}

// Len returns the number of groups.
func (g Grouped) Len() int {
	return len(g.keys)
}

// Total returns the number of apps across all groups.
func (g Grouped) Total() int {
	n := 0
	for _, apps := range g.groups {
		n += len(apps)
	}
	return n
}

// Find looks up an app by name inside group key.
func (g Grouped) Find(key, name string) (AppDescriptor, bool) {
	for _, app := range g.groups[key] {
		if app.Name == name {
			return app, true
		}
	}
	return AppDescriptor{}, false
}

// Contains reports whether app (by name) belongs to group key.
func (g Grouped) Contains(key string, app AppDescriptor) bool {
	_, ok := g.Find(key, app.Name)
	return ok
}

// IconURL resolves an icon path against the backend origin. Absolute URLs
// are returned unchanged; an empty icon yields an empty string.
func IconURL(origin, icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return ""
	}
	ref, err := url.Parse(icon)
	if err != nil {
		return icon
	}
	if ref.IsAbs() {
		return icon
	}
	base, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || base.Scheme == "" {
		return icon
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return base.ResolveReference(ref).String()
}
