package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Check names used by Register.
const (
	CheckExists    = "exists"
	CheckUnique    = "unique"
	CheckMember    = "member"
	CheckNotMember = "not_member"
)

// Default messages.
const (
	MessageNotExist  = "{Property} is invalid."
	MessageTaken     = `{Property} "{value}" has already been taken.`
	MessageNotMember = "{Property} is not in the list of acceptable values."
	MessageMember    = "{Property} must not be in the list of acceptable values."
)

// Querier runs a single-row query. *pgxpool.Pool, *pgx.Conn and pgx.Tx
// satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Lookup builds validation rules backed by PostgreSQL and Redis.
type Lookup struct {
	db     Querier
	rdb    redis.Cmdable
	logger *slog.Logger

	breakerSettings *gobreaker.Settings
	breaker         *gobreaker.CircuitBreaker[bool]
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithPostgres sets the database used by Exists and Unique.
func WithPostgres(db Querier) Option {
	return func(l *Lookup) {
		l.db = db
	}
}

// WithRedis sets the client used by Member and NotMember.
func WithRedis(rdb redis.Cmdable) Option {
	return func(l *Lookup) {
		l.rdb = rdb
	}
}

// WithLogger sets the logger for query tracing.
func WithLogger(log *slog.Logger) Option {
	return func(l *Lookup) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithCircuitBreaker guards every store call with a circuit breaker.
// While the breaker is open, lookups fail fast with gobreaker.ErrOpenState
// and Validate returns that error. State changes are logged at warn level
// unless settings.OnStateChange is set.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(l *Lookup) {
		l.breakerSettings = &settings
	}
}

// New creates a Lookup.
func New(opts ...Option) *Lookup {
	l := &Lookup{logger: logger.Discard()}
	for _, opt := range opts {
		opt(l)
	}
	if st := l.breakerSettings; st != nil {
		if st.Name == "" {
			st.Name = "lookup"
		}
		if st.OnStateChange == nil {
			log := l.logger
			st.OnStateChange = func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					logger.Component(name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}
		}
		l.breaker = gobreaker.NewCircuitBreaker[bool](*st)
	}
	return l
}

// call runs fn through the circuit breaker when one is configured.
func (l *Lookup) call(fn func() (bool, error)) (bool, error) {
	if l.breaker == nil {
		return fn()
	}
	return l.breaker.Execute(fn)
}

// Register adds the lookup checks to reg so rules can refer to them with
// validator.Use. Database checks are registered only when a database is
// configured, set checks only when a Redis client is.
func (l *Lookup) Register(reg *validator.Registry) error {
	checks := map[string]validator.CheckFunc{}
	if l.db != nil {
		checks[CheckExists] = l.checkExists
		checks[CheckUnique] = l.checkUnique
	}
	if l.rdb != nil {
		checks[CheckMember] = l.checkMember
		checks[CheckNotMember] = l.checkNotMember
	}
	for name, check := range checks {
		if err := reg.Register(name, check); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lookup) trace(ctx context.Context, check string, start time.Time, err error, attrs ...slog.Attr) {
	attrs = append(attrs, logger.Check(check), logger.Duration(time.Since(start)), logger.Error(err))
	l.logger.LogAttrs(ctx, slog.LevelDebug, "lookup finished", attrs...)
}

// scalar reports whether value can be used as a single query argument.
func scalar(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Pointer, reflect.Interface, reflect.UnsafePointer:
		_, isBytes := value.([]byte)
		return isBytes
	default:
		return true
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
