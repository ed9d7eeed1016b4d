package validator

import (
	"fmt"
	"regexp"
	"sync"
)

// compiled patterns shared by regex checks configured with strings
var patternCache sync.Map

// Match checks that a string matches pattern.
// An invalid pattern makes the rule fail validation with ErrInvalidRule.
func Match(pattern string) *Rule {
	return regexRule(pattern, false)
}

// NotMatch checks that a string does not match pattern.
func NotMatch(pattern string) *Rule {
	return regexRule(pattern, true)
}

func regexRule(pattern string, not bool) *Rule {
	re, err := compilePattern(pattern)
	if err != nil {
		return invalidRule(KindLeaf, err.Error())
	}
	return newLeaf("regex", CheckFunc(checkRegex), Params{"pattern": re, "not": not})
}

func checkRegex(value any, params Params, _ *Context) ([]Failure, error) {
	var re *regexp.Regexp
	switch p := params["pattern"].(type) {
	case *regexp.Regexp:
		re = p
	case string:
		compiled, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		re = compiled
	default:
		return nil, fmt.Errorf("pattern must be a string or *regexp.Regexp, got %s", typeName(p))
	}

	s, ok := stringValue(value)
	if !ok {
		return Fail("{Property} must be a string.", map[string]any{"type": typeName(value)}), nil
	}
	if re.MatchString(s) == params.Bool("not") {
		return Fail("{Property} is invalid.", map[string]any{"pattern": re.String()}), nil
	}
	return nil, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}
