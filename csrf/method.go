package csrf

import (
	"net/http"
	"strings"
)

// Method is an HTTP request method in canonical upper case.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
	MethodTrace   Method = http.MethodTrace
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodPatch   Method = http.MethodPatch
	MethodDelete  Method = http.MethodDelete
	MethodConnect Method = http.MethodConnect
)

// Methods that never carry the token
var defaultSafeMethods = []Method{
	MethodGet,
	MethodHead,
	MethodOptions,
	MethodTrace,
}

// ParseMethod normalizes s into a Method. Matching is case-insensitive and an
// empty string means GET, as it does for net/http. Methods outside the known
// set are kept (upper-cased) and treated as unsafe.
func ParseMethod(s string) Method {
	m := strings.ToUpper(strings.TrimSpace(s))
	if m == "" {
		return MethodGet
	}
	return Method(m)
}

// Safe reports whether m is one of GET, HEAD, OPTIONS or TRACE.
func (m Method) Safe() bool {
	for _, s := range defaultSafeMethods {
		if m == s {
			return true
		}
	}
	return false
}

func (m Method) String() string {
	return string(m)
}
