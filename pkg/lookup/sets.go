package lookup

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Member checks that the value is a member of the Redis set stored at key.
func (l *Lookup) Member(key string) *validator.Rule {
	return validator.Leaf(validator.CheckFunc(l.checkMember), validator.Params{"key": key}).Named(CheckMember)
}

// NotMember checks that the value is not a member of the Redis set at key.
func (l *Lookup) NotMember(key string) *validator.Rule {
	return validator.Leaf(validator.CheckFunc(l.checkNotMember), validator.Params{"key": key}).Named(CheckNotMember)
}

func (l *Lookup) checkMember(value any, params validator.Params, ec *validator.Context) ([]validator.Failure, error) {
	if !scalar(value) {
		return validator.Fail(MessageNotMember, nil), nil
	}
	ok, err := l.isMember(value, params, ec, CheckMember)
	if err != nil {
		return nil, err
	}
	if !ok {
		return validator.Fail(MessageNotMember, nil), nil
	}
	return nil, nil
}

func (l *Lookup) checkNotMember(value any, params validator.Params, ec *validator.Context) ([]validator.Failure, error) {
	if !scalar(value) {
		return nil, nil
	}
	ok, err := l.isMember(value, params, ec, CheckNotMember)
	if err != nil {
		return nil, err
	}
	if ok {
		return validator.Fail(MessageMember, nil), nil
	}
	return nil, nil
}

func (l *Lookup) isMember(value any, params validator.Params, ec *validator.Context, check string) (bool, error) {
	if l.rdb == nil {
		return false, ErrNoRedis
	}
	key := params.String("key")
	if key == "" {
		return false, ErrMissingKey
	}

	ctx := ec.Context()
	start := time.Now()
	ok, err := l.call(func() (bool, error) {
		return l.rdb.SIsMember(ctx, key, stringify(value)).Result()
	})
	l.trace(ctx, check, start, err, slog.String("key", key))
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return ok, nil
}
