package validator

import (
	"errors"
	"fmt"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var tagValidator = sync.OnceValue(func() *playground.Validate {
	return playground.New(playground.WithRequiredStructEnabled())
})

// Tag checks the value with go-playground/validator tag syntax,
// for example Tag("required,email") or Tag("gte=1,lte=10").
func Tag(tag string) *Rule {
	if tag == "" {
		return invalidRule(KindLeaf, "tag is empty")
	}
	return newLeaf("tag", CheckFunc(checkTag), Params{"tag": tag})
}

func checkTag(value any, params Params, _ *Context) (failures []Failure, err error) {
	tag := params.String("tag")
	if tag == "" {
		return nil, errors.Join(ErrInvalidRule, errors.New("tag parameter is empty"))
	}

	// Var panics on undefined tags
	defer func() {
		if r := recover(); r != nil {
			failures, err = nil, errors.Join(ErrInvalidRule, fmt.Errorf("tag %q: %v", tag, r))
		}
	}()

	verr := tagValidator().Var(value, tag)
	if verr == nil {
		return nil, nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(verr, &fieldErrs) {
		return nil, verr
	}
	for _, fe := range fieldErrs {
		failures = append(failures, Failure{
			Message: "{Property} failed on the \"{tag}\" rule.",
			Params: map[string]any{
				"tag":   fe.Tag(),
				"param": fe.Param(),
			},
		})
	}
	return failures, nil
}
