package http

import "fmt"

// StatusCode is an HTTP response status.
type StatusCode uint16

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusNoContent           StatusCode = 204
	StatusMovedPermanently    StatusCode = 301
	StatusFound               StatusCode = 302
	StatusNotModified         StatusCode = 304
	StatusBadRequest          StatusCode = 400
	StatusUnauthorized        StatusCode = 401
	StatusForbidden           StatusCode = 403
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusRequestTimeout      StatusCode = 408
	StatusConflict            StatusCode = 409
	StatusPayloadTooLarge     StatusCode = 413
	StatusURITooLong          StatusCode = 414
	StatusTooManyRequests     StatusCode = 429
	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
	StatusBadGateway          StatusCode = 502
	StatusServiceUnavailable  StatusCode = 503
)

// Code returns the numeric status code.
func (s StatusCode) Code() uint16 { return uint16(s) }

// ReasonPhrase returns the canonical reason phrase for the status.
func (s StatusCode) ReasonPhrase() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusNoContent:
		return "No Content"
	case StatusMovedPermanently:
		return "Moved Permanently"
	case StatusFound:
		return "Found"
	case StatusNotModified:
		return "Not Modified"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusMethodNotAllowed:
		return "Method Not Allowed"
	case StatusRequestTimeout:
		return "Request Timeout"
	case StatusConflict:
		return "Conflict"
	case StatusPayloadTooLarge:
		return "Payload Too Large"
	case StatusURITooLong:
		return "URI Too Long"
	case StatusTooManyRequests:
		return "Too Many Requests"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusBadGateway:
		return "Bad Gateway"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	}
	return "Unknown"
}

func (s StatusCode) String() string {
	return fmt.Sprintf("%d %s", uint16(s), s.ReasonPhrase())
}
