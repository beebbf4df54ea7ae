package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

type mockProvider struct {
	id   string
	fail bool
	err  error
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "Evaluates mock polynomials",
		Category:     types.CategoryMath,
		Capabilities: []string{"exact_rounding"},
		Tools: []types.Tool{
			{ID: m.id + ".eval", Name: "Mock Eval", Returns: "string"},
		},
	}
}

func (m *mockProvider) Execute(_ context.Context, toolID string, _ map[string]interface{}, _ *types.Context) (*types.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.fail {
		return failure("bad params"), nil
	}
	return &types.Result{Success: true, Data: map[string]interface{}{"tool": toolID}}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(&mockProvider{id: "test"}), "duplicate")
	assert.Error(t, r.Register(&mockProvider{}), "empty ID")
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "zeta"}))
	require.NoError(t, r.Register(&mockProvider{id: "alpha"}))

	services := r.List(nil)
	require.Len(t, services, 2)
	assert.Equal(t, "alpha", services[0].ID)

	cat := types.CategoryMath
	assert.Len(t, r.List(&cat), 2)
	other := types.Category("storage")
	assert.Empty(t, r.List(&other))
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "mock"}))

	results := r.Discover("exact rounding of polynomials", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "mock", results[0].ID)

	assert.Empty(t, r.Discover("weather", 5))
}

func TestExecute(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	r := NewRegistry().WithMetrics(metrics)
	require.NoError(t, r.Register(&mockProvider{id: "ok"}))
	require.NoError(t, r.Register(&mockProvider{id: "bad", fail: true}))
	require.NoError(t, r.Register(&mockProvider{id: "boom", err: errors.New("boom")}))

	ctx := context.Background()
	result, err := r.Execute(ctx, "ok.eval", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ok.eval", result.Data["tool"])

	result, err = r.Execute(ctx, "bad.eval", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	_, err = r.Execute(ctx, "boom.eval", nil, nil)
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceCalls.WithLabelValues("ok", "ok.eval", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceCalls.WithLabelValues("bad", "bad.eval", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ServiceErrors.WithLabelValues("boom", "boom.eval", "internal")))
}

func TestExecuteRejectsUnknownTools(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "noprefix", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidToolID)
	assert.False(t, result.Success)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.False(t, result.Success)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"math": 2}, stats["categories"])
}

func TestExecuteTracesToolCalls(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := tracing.New("test", zap.New(core))
	r := NewRegistry().WithTracer(tracer)
	require.NoError(t, r.Register(&mockProvider{id: "ok"}))
	require.NoError(t, r.Register(&mockProvider{id: "boom", err: errors.New("boom")}))

	ctx := tracing.WithSpanContext(context.Background(), "trace-1", "parent-1")
	_, err := r.Execute(ctx, "ok.eval", nil, &types.Context{RequestID: "req-1"})
	require.NoError(t, err)
	_, err = r.Execute(ctx, "boom.eval", nil, nil)
	require.Error(t, err)
	tracer.Close()

	ok := logs.FilterMessage("span completed").All()
	require.Len(t, ok, 1)
	fields := ok[0].ContextMap()
	assert.Equal(t, "tool ok.eval", fields["operation"])
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "parent-1", fields["parent_id"])
	assert.Equal(t, "req-1", fields["request_id"])

	assert.Equal(t, 1, logs.FilterMessage("span completed with error").Len())
}
