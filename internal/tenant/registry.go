package tenant

import "errors"

// ErrUnknownApplication is returned when no configured application matches a
// lookup.
var ErrUnknownApplication = errors.New("application not found")

// Registry is an immutable in-memory index of the configured applications.
// Lookups are linear scans; tenant counts are small and bounded.
type Registry struct {
	apps []Application
}

// NewRegistry creates a registry over the given applications.
func NewRegistry(apps []Application) *Registry {
	return &Registry{apps: apps}
}

// FindByID returns the application with the given id, or
// ErrUnknownApplication.
func (r *Registry) FindByID(id string) (*Application, error) {
	for i := range r.apps {
		if r.apps[i].ID == id {
			app := r.apps[i]

			return &app, nil
		}
	}

	return nil, ErrUnknownApplication
}

// FindByKey returns the application with the given id and API key. The id is
// matched as well as the key so that a key value reused by another tenant can
// never authorize requests across namespaces.
func (r *Registry) FindByKey(id, key string) (*Application, error) {
	for i := range r.apps {
		if r.apps[i].ID == id && r.apps[i].Key == key {
			app := r.apps[i]

			return &app, nil
		}
	}

	return nil, ErrUnknownApplication
}
