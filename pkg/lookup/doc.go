// Package lookup provides validation rules that consult external stores.
//
// Exists and Unique query PostgreSQL through any Querier (*pgxpool.Pool,
// *pgx.Conn or pgx.Tx). Member and NotMember test Redis set membership
// through a go-redis client.
//
//	lk := lookup.New(lookup.WithPostgres(pool), lookup.WithRedis(rdb))
//
//	rules := validator.Rules{
//		"email":   {validator.Required(), lk.Unique("users", "email", lookup.ExceptProperty("id", "id"))},
//		"plan_id": {lk.Exists("billing.plans", "id", lookup.Where("active", true))},
//		"role":    {lk.Member("roles")},
//	}
//
// Register adds the same checks to a validator.Registry under the names
// exists, unique, member and not_member so they can be referenced with
// validator.Use.
//
// Store failures are returned from Validate as errors rather than reported
// as validation messages. WithCircuitBreaker wraps every store call in a
// github.com/sony/gobreaker circuit breaker so an unavailable store fails
// fast with gobreaker.ErrOpenState.
//
// ConnectPostgres and ConnectRedis open clients from PostgresConfig and
// RedisConfig, which can be populated from the environment with
// github.com/caarlos0/env.
package lookup
