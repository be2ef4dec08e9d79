package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// deliveryRow is a minimal model for exercising traced database operations.
type deliveryRow struct {
	ID        uint   `gorm:"primaryKey"`
	Status    string `gorm:"size:20"`
	CreatedAt time.Time
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&deliveryRow{})
	require.NoError(t, err)

	return db
}

func setupTracerWithRecorder(t *testing.T) (*trace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	spanRecorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(spanRecorder))
	return tp, spanRecorder
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.True(t, cfg.WithoutVariables)
}

func TestDBTracingPlugin_RegisterOtelGorm_Disabled(t *testing.T) {
	db := setupTestDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = false

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	err := plugin.RegisterOtelGorm(db)

	assert.NoError(t, err)
}

func TestDBTracingPlugin_RegisterOtelGorm_Enabled(t *testing.T) {
	db := setupTestDB(t)

	cfg := DBTracingConfig{
		Enabled:          true,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "sqlite",
		WithoutVariables: true,
	}

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	err := plugin.RegisterOtelGorm(db)

	assert.NoError(t, err)
}

func TestDBTracingPlugin_RegisterOtelGorm_DoubleRegistration(t *testing.T) {
	db := setupTestDB(t)

	cfg := DBTracingConfig{
		Enabled:          true,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "sqlite",
		WithoutVariables: true,
	}

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	err := plugin.RegisterOtelGorm(db)
	assert.NoError(t, err)

	// Duplicate plugin and callback names are rejected
	err = plugin.RegisterOtelGorm(db)
	assert.Error(t, err)
}

func TestAfterQuery_RecordNotFoundIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	tp, spanRecorder := setupTracerWithRecorder(t)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "error-test")

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(ctx)
	var result deliveryRow
	tx := db.First(&result, 99999)

	plugin.afterQuery(tx)
	span.End()

	spans := spanRecorder.Ended()
	require.NotEmpty(t, spans)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestAfterQuery_RowsAffectedAttribute(t *testing.T) {
	db := setupTestDB(t)
	tp, spanRecorder := setupTracerWithRecorder(t)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "rows-affected-test")

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(ctx)
	rows := []deliveryRow{{Status: "DELIVERED"}, {Status: "HOLIDAY"}, {Status: "NOT_DELIVERED"}}
	result := db.Create(&rows)
	require.NoError(t, result.Error)

	plugin.afterQuery(result.Statement.DB)
	span.End()

	spans := spanRecorder.Ended()
	require.NotEmpty(t, spans)

	foundRows := false
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.rows_affected" {
			foundRows = true
			assert.Equal(t, int64(3), attr.Value.AsInt64())
			break
		}
	}
	assert.True(t, foundRows, "db.rows_affected attribute should be present")
}

func TestAfterQuery_SlowQueryEvent(t *testing.T) {
	db := setupTestDB(t)
	tp, spanRecorder := setupTracerWithRecorder(t)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	cfg := DefaultDBTracingConfig()
	cfg.SlowQueryThresh = 1 * time.Nanosecond
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "slow-query-test")

	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now())
	time.Sleep(1 * time.Millisecond)

	db = db.WithContext(ctx)
	var result deliveryRow
	tx := db.First(&result)
	tx.Statement.Context = ctx

	plugin.afterQuery(tx)
	span.End()

	spans := spanRecorder.Ended()
	require.NotEmpty(t, spans)

	foundEvent := false
	for _, event := range spans[0].Events() {
		if event.Name == "slow_query_warning" {
			foundEvent = true
			for _, attr := range event.Attributes {
				if attr.Key == "duration_ms" {
					assert.GreaterOrEqual(t, attr.Value.AsInt64(), int64(1))
				}
			}
		}
	}
	assert.True(t, foundEvent, "slow_query_warning event should be recorded")
}

func TestAfterQuery_NonRecordingSpan(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	// No span in the context, must not panic
	db = db.WithContext(context.Background())
	plugin.afterQuery(db)
}

func TestAfterQuery_NilContext(t *testing.T) {
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db := setupTestDB(t)
	plugin.afterQuery(db)
}

func TestRegisterOtelGorm_TracedOperations(t *testing.T) {
	db := setupTestDB(t)
	tp, spanRecorder := setupTracerWithRecorder(t)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	cfg := DBTracingConfig{
		Enabled:          true,
		LogFullSQL:       true,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "sqlite",
		WithoutVariables: false,
	}

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	err := plugin.RegisterOtelGorm(db)
	require.NoError(t, err)

	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "integration-test")

	db = db.WithContext(ctx)
	result := db.Create(&deliveryRow{Status: "DELIVERED"})
	require.NoError(t, result.Error)

	var found deliveryRow
	result = db.First(&found, "status = ?", "DELIVERED")
	require.NoError(t, result.Error)
	assert.Equal(t, "DELIVERED", found.Status)

	span.End()

	spans := spanRecorder.Ended()
	assert.NotEmpty(t, spans)
}

func TestDBTracingConfig_SecurityDefaults(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.LogFullSQL, "LogFullSQL should be disabled by default for security")
	assert.True(t, cfg.WithoutVariables, "WithoutVariables should be true by default for security")
}
