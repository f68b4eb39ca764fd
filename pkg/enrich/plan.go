package enrich

import (
	"context"
	"fmt"
)

// Lookup fetches one foreign resource by id. *remote.Client satisfies it.
type Lookup interface {
	Get(ctx context.Context, service, resourcePath, id string, out any) error
}

// Store is the read side of an entity store.
type Store[K, E any] interface {
	FindByID(ctx context.Context, key K) (*E, error)
	FindAll(ctx context.Context) ([]E, error)
}

// Field describes one foreign reference of entity E hydrated into view D.
type Field[E, D any] struct {
	Name         string
	Service      string
	ResourcePath string
	Required     bool

	foreignID func(E) string
	newTarget func() any
	assign    func(*D, any)
}

// Ref declares a foreign field. foreignID returns "" when the row has no
// reference, in which case nothing is fetched. assign receives a value
// shared by every row carrying the same id.
func Ref[E, D, F any](name, service, resourcePath string, foreignID func(E) string, assign func(*D, *F)) Field[E, D] {
	return Field[E, D]{
		Name:         name,
		Service:      service,
		ResourcePath: resourcePath,
		foreignID:    foreignID,
		newTarget:    func() any { return new(F) },
		assign:       func(d *D, v any) { assign(d, v.(*F)) },
	}
}

// Require makes a lookup failure fail the whole request.
func (f Field[E, D]) Require() Field[E, D] {
	return f.RequireIf(true)
}

// RequireIf sets the required flag from configuration.
func (f Field[E, D]) RequireIf(required bool) Field[E, D] {
	f.Required = required
	return f
}

// Plan is the enrichment recipe for one entity type.
type Plan[E, D any] struct {
	Entity string
	Local  func(E) D
	Fields []Field[E, D]
}

// RequiredFieldError reports a failed lookup for a required field.
type RequiredFieldError struct {
	Entity  string
	Field   string
	Service string
	ID      string
	Err     error
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s.%s: lookup of %s %s failed: %v", e.Entity, e.Field, e.Service, e.ID, e.Err)
}

func (e *RequiredFieldError) Unwrap() error { return e.Err }
