package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Tokenizer / Parser Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryCompile,
		Message:  "Unterminated string literal",
		Detail:   "A quoted string inside an RSX body never closes. Add the missing closing quote.",
		DocURL:   "https://volki.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryCompile,
		Message:  "Unterminated brace expression",
		Detail:   "A `{` expression inside an RSX body never closes. Every opening brace must have a matching closing brace.",
		DocURL:   "https://volki.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryCompile,
		Message:  "Unexpected character in tag",
		Detail:   "Only attribute names, `=`, quoted values, brace expressions, `>` and `/>` may appear inside a tag.",
		DocURL:   "https://volki.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryCompile,
		Message:  "Unexpected character in RSX body",
		Detail:   "Text children must be quoted strings; dynamic content goes in `{...}` expressions.",
		DocURL:   "https://volki.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryCompile,
		Message:  "Mismatched closing tag",
		Detail:   "The closing tag name does not match the innermost open element.",
		DocURL:   "https://volki.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryCompile,
		Message:  "Malformed conditional expression",
		Detail:   "Conditional RSX must take the form `{cond && ( ... )}` or `{cond ? ( ... ) : ( ... )}` with non-empty condition and branches.",
		DocURL:   "https://volki.dev/docs/errors/E006",
	},

	// ============================================
	// Boundary Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryCompile,
		Message:  "Client-only API used in a server function",
		Detail:   "DOM and state APIs only exist in the browser runtime. Server functions (-> Html, -> Fragment) render once and never see the DOM.",
		DocURL:   "https://volki.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryCompile,
		Message:  "Server-only API used in a client function",
		Detail:   "Response, HtmlDocument and Metadata builders are server constructs; they are not compiled into the WASM bundle.",
		DocURL:   "https://volki.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryCompile,
		Message:  "Component-only API used in a Client function",
		Detail:   "State hooks allocate per-component slots and are only valid in `-> Component` functions.",
		DocURL:   "https://volki.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryCompile,
		Message:  "Runtime API used at top level",
		Detail:   "Runtime APIs need a mounted component or event context; top-level code runs during module load.",
		DocURL:   "https://volki.dev/docs/errors/E104",
	},

	// ============================================
	// Semantic Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryCompile,
		Message:  "Unresolved component",
		Detail:   "Capitalized tags must resolve to a local or imported function returning Fragment.",
		DocURL:   "https://volki.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryCompile,
		Message:  "Component must return Fragment",
		Detail:   "A symbol used as a component tag resolved to a function with a different return type.",
		DocURL:   "https://volki.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryCompile,
		Message:  "Unknown prop",
		Detail:   "The attribute does not match any declared parameter of the resolved component.",
		DocURL:   "https://volki.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryCompile,
		Message:  "Missing required prop",
		Detail:   "Every declared parameter except `children` must be supplied on the component tag.",
		DocURL:   "https://volki.dev/docs/errors/E204",
	},
	"E205": {
		Category: CategoryCompile,
		Message:  "Component does not accept children",
		Detail:   "Pass children only to components declaring a `children: Vec<HtmlNode>` parameter.",
		DocURL:   "https://volki.dev/docs/errors/E205",
	},
	"E206": {
		Category: CategoryCompile,
		Message:  "Invalid event binding",
		Detail:   "Event attributes take `{handler}` where handler is a top-level Client function of arity 0 or 1.",
		DocURL:   "https://volki.dev/docs/errors/E206",
	},

	// ============================================
	// Style Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryStyle,
		Message:  "Unresolved utility class",
		Detail:   "The class does not match any utility family, arbitrary value, or palette color. Prefix with `custom:` to pass it through untouched.",
		DocURL:   "https://volki.dev/docs/errors/E301",
	},

	// ============================================
	// Config Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryConfig,
		Message:  "Invalid volki.toml",
		Detail:   "The configuration file could not be decoded.",
		DocURL:   "https://volki.dev/docs/errors/E401",
	},
	"E402": {
		Category: CategoryConfig,
		Message:  "Invalid TLS configuration",
		Detail:   "TLS requires both a certificate and a private key file that exist and parse.",
		DocURL:   "https://volki.dev/docs/errors/E402",
	},

	// ============================================
	// Runtime / Protocol Errors (E501-E599)
	// ============================================

	"E501": {
		Category: CategoryProtocol,
		Message:  "Malformed HTTP request",
		Detail:   "The request line or headers did not parse as HTTP/1.1.",
		DocURL:   "https://volki.dev/docs/errors/E501",
	},
	"E502": {
		Category: CategoryRuntime,
		Message:  "Worker panic while handling request",
		Detail:   "The route handler panicked; the connection received a 500 and was closed.",
		DocURL:   "https://volki.dev/docs/errors/E502",
	},

	// ============================================
	// CLI Errors (E601-E699)
	// ============================================

	"E601": {
		Category: CategoryCLI,
		Message:  "Project directory already exists",
		Detail:   "Refusing to scaffold into an existing directory.",
		DocURL:   "https://volki.dev/docs/errors/E601",
	},
	"E602": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
		DocURL:   "https://volki.dev/docs/errors/E602",
	},
	"E603": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names use lowercase letters, digits, and hyphens.",
		DocURL:   "https://volki.dev/docs/errors/E603",
	},
}

// Lookup returns the template for a code, if registered.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
