package validator

import (
	"net"
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// Email checks that a string is an email address with a dotted domain.
func Email() *Rule {
	return newLeaf("email", CheckFunc(checkEmail), nil)
}

// URL checks that a string is an absolute URL with a host.
// Only http and https are accepted unless other schemes are given.
func URL(schemes ...string) *Rule {
	params := Params{}
	if len(schemes) > 0 {
		params["schemes"] = schemes
	}
	return newLeaf("url", CheckFunc(checkURL), params)
}

// IP checks that a string is an IPv4 or IPv6 address.
func IP() *Rule {
	return newLeaf("ip", CheckFunc(checkIP), nil)
}

// IPv4 checks that a string is an IPv4 address.
func IPv4() *Rule {
	return newLeaf("ip", CheckFunc(checkIP), Params{"version": 4})
}

// IPv6 checks that a string is an IPv6 address.
func IPv6() *Rule {
	return newLeaf("ip", CheckFunc(checkIP), Params{"version": 6})
}

func checkEmail(value any, _ Params, _ *Context) ([]Failure, error) {
	s, ok := stringValue(value)
	if !ok || !isEmail(s) {
		return Fail("{Property} is not a valid email address.", nil), nil
	}
	return nil, nil
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	// Domain must contain at least one dot and no empty labels
	if !strings.Contains(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func checkURL(value any, params Params, _ *Context) ([]Failure, error) {
	schemes := []string{"http", "https"}
	if v, ok := params["schemes"].([]string); ok && len(v) > 0 {
		schemes = v
	}

	s, ok := stringValue(value)
	if ok && strings.TrimSpace(s) != "" {
		u, err := url.ParseRequestURI(s)
		if err == nil && u.Host != "" && slices.Contains(schemes, strings.ToLower(u.Scheme)) {
			return nil, nil
		}
	}
	return Fail("{Property} is not a valid URL.", map[string]any{
		"schemes": strings.Join(schemes, ", "),
	}), nil
}

func checkIP(value any, params Params, _ *Context) ([]Failure, error) {
	version, _ := params.Int("version")

	s, ok := stringValue(value)
	var ip net.IP
	if ok {
		ip = net.ParseIP(strings.TrimSpace(s))
	}

	switch {
	case ip == nil:
		return Fail("{Property} must be a valid IP address.", nil), nil
	case version == 4 && ip.To4() == nil:
		return Fail("{Property} must be a valid IPv4 address.", nil), nil
	case version == 6 && !strings.Contains(s, ":"):
		return Fail("{Property} must be a valid IPv6 address.", nil), nil
	}
	return nil, nil
}
