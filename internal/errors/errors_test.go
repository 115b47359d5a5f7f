package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E005")
	if err.Code != "E005" {
		t.Errorf("Code = %q, want E005", err.Code)
	}
	if err.Category != CategoryCompile {
		t.Errorf("Category = %q, want compile", err.Category)
	}
	if err.Message == "" || err.Detail == "" || err.DocURL == "" {
		t.Error("registry template fields not populated")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	err := New("E301")
	want := "E301: Unresolved utility class"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noCode := Newf(CategoryStyle, "bad class %q", "x")
	if noCode.Error() != `bad class "x"` {
		t.Errorf("Error() = %q", noCode.Error())
	}
}

func TestBuilderChain(t *testing.T) {
	err := Newf(CategoryCompile, "boom").
		WithDetail("details").
		WithSuggestion("try again").
		WithExample("fn main() {}")
	if err.Detail != "details" || err.Suggestion != "try again" {
		t.Error("builder methods did not set fields")
	}
	if err.Example != "fn main() {}" {
		t.Errorf("Example = %q", err.Example)
	}
}

func TestLocationString(t *testing.T) {
	loc := &Location{File: "app/page.volki", Line: 3, Column: 7}
	if loc.String() != "app/page.volki:3:7" {
		t.Errorf("String() = %q", loc.String())
	}
	noCol := &Location{File: "a.volki", Line: 9}
	if noCol.String() != "a.volki:9" {
		t.Errorf("String() = %q", noCol.String())
	}
	var nilLoc *Location
	if nilLoc.String() != "" {
		t.Error("nil location should format as empty string")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("io failure")
	err := New("E401").Wrap(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}

	same := FromError(err, "E401")
	if same != err {
		t.Error("FromError should pass VolkiError through")
	}
	if FromError(nil, "E401") != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E005").WithLocation("app/page.volki", 4, 2)
	got := err.FormatCompact()
	if !strings.HasPrefix(got, "app/page.volki:4:2: E005:") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := Newf(CategoryProtocol, "bad request")
	got := err.FormatJSON()
	if !strings.Contains(got, `"category":"protocol"`) {
		t.Errorf("FormatJSON() = %q", got)
	}
	if !strings.Contains(got, `"message":"bad request"`) {
		t.Errorf("FormatJSON() = %q", got)
	}
}

func TestIsCategory(t *testing.T) {
	if !IsCategory(New("E301"), CategoryStyle) {
		t.Error("E301 should be a style error")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryStyle) {
		t.Error("plain errors have no category")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven eight nine ten", 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q exceeds width", l)
		}
	}
}
