package compiler

import (
	verrors "github.com/volki-dev/volki/internal/errors"
)

// Diagnostic converts the error into its registry form for terminal
// display: the registered message, hint and doc link for the code,
// with this occurrence's text as the detail and the source position
// attached. Errors without a code (I/O during dist assembly) keep
// their plain message.
func (e *CompileError) Diagnostic() *verrors.VolkiError {
	if e.Code == "" {
		return verrors.Newf(verrors.CategoryCompile, "%s", e.Error())
	}
	d := verrors.New(e.Code)
	// The registered explanation becomes the hint; the detail slot
	// carries what actually went wrong here.
	if d.Detail != "" {
		d = d.WithSuggestion(d.Detail)
	}
	d = d.WithDetail(e.Message)
	if e.Line > 0 {
		d = d.WithLocation(e.File, e.Line, e.Col)
	}
	return d
}
