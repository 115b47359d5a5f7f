package http

import "bytes"

// SizeLimits caps the request components the parser will accept.
type SizeLimits struct {
	MaxHeaderSize int
	MaxBodySize   int
	MaxURILength  int
}

// DefaultSizeLimits mirrors the server defaults: 8KB headers, 10MB body,
// 8KB URIs.
func DefaultSizeLimits() SizeLimits {
	return SizeLimits{
		MaxHeaderSize: 8 * 1024,
		MaxBodySize:   10 * 1024 * 1024,
		MaxURILength:  8192,
	}
}

// ParseStatus classifies the outcome of an incremental parse attempt.
type ParseStatus int

const (
	// ParseIncomplete means more bytes are needed.
	ParseIncomplete ParseStatus = iota
	// ParseComplete means a full request was decoded.
	ParseComplete
	// ParseError means the buffer can never become a valid request.
	ParseError
)

// Parse errors are stable strings the reactor maps to status codes.
const (
	ErrHeadersTooLarge = "headers too large"
	ErrBodyTooLarge    = "body too large"
	ErrURITooLong      = "URI too long"
	ErrMalformed       = "malformed request line"
)

// ParseResult carries the outcome of ParseRequest.
type ParseResult struct {
	Status   ParseStatus
	Request  *Request
	Consumed int
	Err      string
}

func incomplete() ParseResult {
	return ParseResult{Status: ParseIncomplete}
}

func parseError(msg string) ParseResult {
	return ParseResult{Status: ParseError, Err: msg}
}

// ParseRequest attempts to decode one HTTP/1.1 request from the front of
// buf. It never blocks: a partial request yields ParseIncomplete and the
// caller retries with more bytes appended. Body length comes from
// Content-Length only; chunked request bodies are not supported.
func ParseRequest(buf []byte, limits SizeLimits) ParseResult {
	headerEnd := bytes.Index(buf, []byte("\r\n\r\n"))
	if headerEnd < 0 {
		if len(buf) > limits.MaxHeaderSize {
			return parseError(ErrHeadersTooLarge)
		}
		return incomplete()
	}

	headerBytes := buf[:headerEnd]
	if len(headerBytes) > limits.MaxHeaderSize {
		return parseError(ErrHeadersTooLarge)
	}

	lineEnd := bytes.Index(headerBytes, []byte("\r\n"))
	if lineEnd < 0 {
		lineEnd = len(headerBytes)
	}
	method, path, ok := parseRequestLine(headerBytes[:lineEnd])
	if !ok {
		return parseError(ErrMalformed)
	}
	if len(path) > limits.MaxURILength {
		return parseError(ErrURITooLong)
	}

	headers := NewHeaders()
	pos := lineEnd + 2
	for pos < len(headerBytes) {
		end := bytes.Index(headerBytes[pos:], []byte("\r\n"))
		var line []byte
		if end < 0 {
			line = headerBytes[pos:]
			pos = len(headerBytes)
		} else {
			line = headerBytes[pos : pos+end]
			pos += end + 2
		}
		if len(line) == 0 {
			break
		}
		if colon := bytes.IndexByte(line, ':'); colon >= 0 {
			name := bytes.TrimSpace(line[:colon])
			value := bytes.TrimSpace(line[colon+1:])
			headers.Set(string(name), string(value))
		}
	}

	headersTotal := headerEnd + 4
	contentLength, _ := headers.ContentLength()
	if contentLength > limits.MaxBodySize {
		return parseError(ErrBodyTooLarge)
	}

	totalNeeded := headersTotal + contentLength
	if len(buf) < totalNeeded {
		return incomplete()
	}

	var body []byte
	if contentLength > 0 {
		body = append([]byte(nil), buf[headersTotal:totalNeeded]...)
	}

	return ParseResult{
		Status:   ParseComplete,
		Request:  NewRequest(method, path, headers, body),
		Consumed: totalNeeded,
	}
}

// parseRequestLine splits "METHOD SP PATH SP HTTP/x.x".
func parseRequestLine(line []byte) (Method, string, bool) {
	firstSp := bytes.IndexByte(line, ' ')
	if firstSp < 0 {
		return 0, "", false
	}
	method, ok := ParseMethod(line[:firstSp])
	if !ok {
		return 0, "", false
	}
	rest := line[firstSp+1:]
	secondSp := bytes.IndexByte(rest, ' ')
	if secondSp < 0 {
		return 0, "", false
	}
	return method, string(rest[:secondSp]), true
}
