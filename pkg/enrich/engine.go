package enrich

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

var tracer = otel.Tracer("enrichment-engine")

// DefaultMaxConcurrency caps concurrent lookups per request.
const DefaultMaxConcurrency = 8

// Options tunes an Engine.
type Options struct {
	MaxConcurrency int
}

// Engine turns stored entities E (keyed by K) into composite views D.
// It only reads from the store.
type Engine[K, E, D any] struct {
	store  Store[K, E]
	lookup Lookup
	plan   Plan[E, D]
	opts   Options
}

func NewEngine[K, E, D any](store Store[K, E], lookup Lookup, plan Plan[E, D], opts Options) *Engine[K, E, D] {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	return &Engine[K, E, D]{store: store, lookup: lookup, plan: plan, opts: opts}
}

// Plan returns the engine's plan
func (e *Engine[K, E, D]) Plan() Plan[E, D] {
	return e.plan
}

// FindByID loads one entity and enriches it. A store error is returned
// before any lookup is issued.
func (e *Engine[K, E, D]) FindByID(ctx context.Context, key K) (*D, error) {
	entity, err := e.store.FindByID(ctx, key)
	if err != nil {
		return nil, err
	}
	return e.EnrichOne(ctx, *entity)
}

// FindAll loads every entity once and enriches the batch.
func (e *Engine[K, E, D]) FindAll(ctx context.Context) ([]D, error) {
	entities, err := e.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return e.EnrichAll(ctx, entities)
}

// EnrichOne enriches a single entity already in hand.
func (e *Engine[K, E, D]) EnrichOne(ctx context.Context, entity E) (*D, error) {
	views, err := e.EnrichAll(ctx, []E{entity})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

type lookupKey struct {
	service string
	path    string
	id      string
}

type resolution struct {
	value any
	err   error
}

// EnrichAll issues one lookup per distinct (service, resource, id) across
// the batch and merges the shared results into every row, in input order.
func (e *Engine[K, E, D]) EnrichAll(ctx context.Context, entities []E) ([]D, error) {
	ctx, span := tracer.Start(ctx, "enrich."+e.plan.Entity,
		trace.WithAttributes(
			attribute.String("enrich.entity", e.plan.Entity),
			attribute.Int("enrich.rows", len(entities)),
		),
	)
	defer span.End()

	planned := make(map[lookupKey]func() any)
	for _, entity := range entities {
		for _, field := range e.plan.Fields {
			id := field.foreignID(entity)
			if id == "" {
				continue
			}
			key := lookupKey{service: field.Service, path: field.ResourcePath, id: id}
			if _, ok := planned[key]; !ok {
				planned[key] = field.newTarget
			}
		}
	}
	span.SetAttributes(attribute.Int("enrich.lookups", len(planned)))

	results := e.resolve(ctx, planned)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	views := make([]D, len(entities))
	for i, entity := range entities {
		view := e.plan.Local(entity)
		for _, field := range e.plan.Fields {
			id := field.foreignID(entity)
			if id == "" {
				continue
			}
			res := results[lookupKey{service: field.Service, path: field.ResourcePath, id: id}]
			if res.err != nil {
				if field.Required {
					span.RecordError(res.err)
					span.SetStatus(codes.Error, res.err.Error())
					return nil, &RequiredFieldError{
						Entity:  e.plan.Entity,
						Field:   field.Name,
						Service: field.Service,
						ID:      id,
						Err:     res.err,
					}
				}
				logger.Warn(ctx).
					Err(res.err).
					Str("entity", e.plan.Entity).
					Str("field", field.Name).
					Str("target_service", field.Service).
					Str("foreign_id", id).
					Msg("Foreign lookup failed, leaving field empty")
				continue
			}
			field.assign(&view, res.value)
		}
		views[i] = view
	}

	return views, nil
}

// resolve runs the planned lookups concurrently. A failed lookup never
// cancels its siblings.
func (e *Engine[K, E, D]) resolve(ctx context.Context, planned map[lookupKey]func() any) map[lookupKey]resolution {
	results := make(map[lookupKey]resolution, len(planned))
	if len(planned) == 0 {
		return results
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(e.opts.MaxConcurrency)

	for key, newTarget := range planned {
		g.Go(func() error {
			target := newTarget()
			err := e.lookup.Get(ctx, key.service, key.path, key.id, target)

			mu.Lock()
			results[key] = resolution{value: target, err: err}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results
}
