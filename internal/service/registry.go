package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

var (
	// ErrInvalidToolID is returned for tool IDs without a service prefix.
	ErrInvalidToolID = errors.New("invalid tool ID format")
	// ErrServiceNotFound is returned when no provider owns the tool's prefix.
	ErrServiceNotFound = errors.New("service not found")
)

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// Provider is implemented by every service
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// WithMetrics records tool calls in m
func (r *Registry) WithMetrics(m *monitoring.Metrics) *Registry {
	r.metrics = m
	return r
}

// WithTracer opens a span per tool call
func (r *Registry) WithTracer(t *tracing.Tracer) *Registry {
	r.tracer = t
	return r
}

// Register adds a provider under its service ID
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return errors.New("service ID cannot be empty")
	}
	if _, loaded := r.services.LoadOrStore(def.ID, provider); loaded {
		return fmt.Errorf("service %q already registered", def.ID)
	}
	return nil
}

// Get retrieves a provider by service ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns the registered services, optionally filtered by category,
// ordered by ID
func (r *Registry) List(category *types.Category) []types.Service {
	services := []types.Service{}
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Discover ranks services by keyword relevance to intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intent = strings.ToLower(intent)
	var results []scored
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if s := relevance(intent, def); s > 0 {
			results = append(results, scored{service: def, score: s})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].service.ID < results[j].service.ID
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute runs a "service.tool" ID on its provider
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok || serviceID == "" {
		return failure(ErrInvalidToolID.Error()), fmt.Errorf("%w: %s", ErrInvalidToolID, toolID)
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		msg := fmt.Sprintf("service not found: %s", serviceID)
		return failure(msg), fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}

	var timer *monitoring.Timer
	if r.metrics != nil {
		timer = monitoring.NewTimer(r.metrics, serviceID, toolID)
	}

	var span *tracing.Span
	if r.tracer != nil {
		span, ctx = r.tracer.StartSpan(ctx, "tool "+toolID)
		span.SetTag("service", serviceID)
		if appCtx != nil && appCtx.RequestID != "" {
			span.SetTag("request_id", appCtx.RequestID)
		}
	}

	result, err := provider.Execute(ctx, toolID, params, appCtx)

	if span != nil {
		if err != nil {
			span.SetError(err)
		} else if result != nil && !result.Success && result.Error != nil {
			span.SetTag("failure", *result.Error)
		}
		span.Finish()
		r.tracer.Submit(span)
	}

	if timer != nil {
		switch {
		case err != nil:
			timer.Stop("error")
			r.metrics.RecordServiceError(serviceID, toolID, "internal")
		case result != nil && !result.Success:
			timer.Stop("failure")
		default:
			timer.Stop("success")
		}
	}
	return result, err
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func relevance(intent string, service types.Service) float64 {
	score := 0.0

	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10
	}
	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		if len(word) > 3 && strings.Contains(intent, word) {
			score += 5
		}
	}
	for _, c := range service.Capabilities {
		if strings.Contains(intent, strings.ReplaceAll(strings.ToLower(c), "_", " ")) {
			score += 3
		}
	}
	for _, tool := range service.Tools {
		if strings.Contains(intent, strings.ToLower(tool.Name)) {
			score += 2
		}
	}
	return score
}

func failure(msg string) *types.Result {
	return &types.Result{Success: false, Error: &msg}
}
