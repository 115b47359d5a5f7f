package http

// Method is an HTTP request method.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodHead
	MethodOptions
)

// ParseMethod maps a request-line token to a Method.
func ParseMethod(b []byte) (Method, bool) {
	switch string(b) {
	case "GET":
		return MethodGet, true
	case "POST":
		return MethodPost, true
	case "PUT":
		return MethodPut, true
	case "PATCH":
		return MethodPatch, true
	case "DELETE":
		return MethodDelete, true
	case "HEAD":
		return MethodHead, true
	case "OPTIONS":
		return MethodOptions, true
	}
	return 0, false
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodPatch:
		return "PATCH"
	case MethodDelete:
		return "DELETE"
	case MethodHead:
		return "HEAD"
	case MethodOptions:
		return "OPTIONS"
	}
	return "UNKNOWN"
}
