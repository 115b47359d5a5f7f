package style

// DiagnosticKind classifies a style diagnostic.
type DiagnosticKind int

const (
	// DiagUnknownClass marks a class whose bare utility failed to resolve.
	DiagUnknownClass DiagnosticKind = iota
)

// Diagnostic is one non-fatal finding from stylesheet generation.
type Diagnostic struct {
	ClassName string
	Kind      DiagnosticKind
	Message   string
}

// Report is the full result of a GenerateCSS run.
type Report struct {
	CSS             string
	Diagnostics     []Diagnostic
	ResolvedCount   int
	UnresolvedCount int
}
