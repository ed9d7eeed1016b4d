package validator

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Phone checks that a string is a valid phone number. Numbers without a
// leading "+" are parsed for the given region (ISO 3166-1 alpha-2, e.g. "US").
// An empty region accepts international numbers only.
func Phone(region string) *Rule {
	params := Params{}
	if region != "" {
		params["region"] = strings.ToUpper(region)
	}
	return newLeaf("phone", CheckFunc(checkPhone), params)
}

func checkPhone(value any, params Params, _ *Context) ([]Failure, error) {
	s, ok := stringValue(value)
	if ok && isPhone(strings.TrimSpace(s), strings.ToUpper(params.String("region"))) {
		return nil, nil
	}
	return Fail("{Property} is not a valid phone number.", nil), nil
}

func isPhone(value, region string) bool {
	if value == "" {
		return false
	}
	number, err := phonenumbers.Parse(value, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}
