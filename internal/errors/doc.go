// Package errors provides structured, coded errors for the volki toolchain.
//
// Every diagnostic surfaced to a user — tokenizer failures, boundary
// violations, unresolved components, config problems — is a *VolkiError
// carrying a stable code, a category, an optional source location with
// surrounding context lines, and fix suggestions.
//
// Create errors from the registry:
//
//	err := errors.New("E005").
//		WithLocation("app/page.volki", 12, 8).
//		WithSuggestion("close <li> before </ul>")
//
// or ad hoc with a category:
//
//	err := errors.Newf(errors.CategoryCompile, "mismatched closing tag </%s>", name)
package errors
