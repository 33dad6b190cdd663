package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomicstack/popup-apps/internal/httpclient"
	"github.com/google/uuid"
)

// AppsPath is the backend endpoint serving the flat app list.
const AppsPath = "/api/apps"

// LoadError reports why a catalog fetch failed.
type LoadError struct {
	Op     string
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source fetches and groups the catalog.
type Source interface {
	Load(ctx context.Context) (Grouped, error)
}

// Loader fetches the app list from the backend.
type Loader struct {
	client  *httpclient.Client
	groupBy GroupBy
}

// NewLoader returns a Loader that groups results by the given key.
func NewLoader(client *httpclient.Client, groupBy GroupBy) *Loader {
	if groupBy == "" {
		groupBy = GroupBySource
	}
	return &Loader{client: client, groupBy: groupBy}
}

// GroupBy returns the grouping applied to loaded apps.
func (l *Loader) GroupBy() GroupBy {
	return l.groupBy
}

// Load fetches the app list. On any failure it returns an empty catalog
// together with a *LoadError.
func (l *Loader) Load(ctx context.Context) (Grouped, error) {
	req, err := l.client.Request(ctx)
	if err != nil {
		return Grouped{}, &LoadError{Op: "request", Err: err}
	}
	resp, err := req.
		SetHeader("X-Request-ID", uuid.NewString()).
		Get(AppsPath)
	if err != nil {
		return Grouped{}, &LoadError{Op: "fetch", Err: err}
	}
	if resp.IsError() {
		return Grouped{}, &LoadError{Op: "fetch", Status: resp.StatusCode(), Err: fmt.Errorf("unexpected response %s", resp.Status())}
	}
	var apps []AppDescriptor
	if err := json.Unmarshal(resp.Body(), &apps); err != nil {
		return Grouped{}, &LoadError{Op: "decode", Status: resp.StatusCode(), Err: err}
	}
	return Group(apps, l.groupBy), nil
}
