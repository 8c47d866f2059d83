package persistence

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/platform/telemetry"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-roulette/internal/adapters/persistence"
	spanKey             = "otel:span"
)

// tracingPlugin wraps every gorm operation in a span.
type tracingPlugin struct{}

func (tracingPlugin) Name() string { return "otel-tracing" }

func (p tracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("create")); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after); err != nil {
		return err
	}

	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("query")); err != nil {
		return err
	}

	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after); err != nil {
		return err
	}

	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("update")); err != nil {
		return err
	}

	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after); err != nil {
		return err
	}

	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("delete")); err != nil {
		return err
	}

	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after); err != nil {
		return err
	}

	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before("row")); err != nil {
		return err
	}

	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after); err != nil {
		return err
	}

	if err := cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before("raw")); err != nil {
		return err
	}

	return cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after)
}

func (tracingPlugin) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx, span := telemetry.StartSpan(db.Statement.Context, instrumentationName, "sqlite "+op,
			attribute.String("db.system", "sqlite"),
			attribute.String("db.operation", op),
			attribute.String("db.sql.table", db.Statement.Table),
		)
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (tracingPlugin) after(db *gorm.DB) {
	v, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}

	span, ok := v.(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))

	err := db.Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}

	telemetry.EndSpan(span, err)
}
