package validator

import (
	"strings"
	"testing"
)

func TestValidateContentTypeSupportsWildcards(t *testing.T) {
	if !ValidateContentType("image/png; charset=binary", []string{"image/*"}) {
		t.Fatalf("expected wildcard to accept image/png")
	}
	if ValidateContentType("application/pdf", []string{"image/*"}) {
		t.Fatalf("expected wildcard to reject application/pdf")
	}
	if ValidateContentType("", []string{"image/*"}) {
		t.Fatalf("expected empty content type to be rejected")
	}
}

func TestDetectFileType(t *testing.T) {
	cases := map[string][]byte{
		"image/png":       {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A},
		"image/jpeg":      {0xFF, 0xD8, 0xFF, 0xE0},
		"application/pdf": []byte("%PDF-1.7"),
		"text/plain":      []byte("hello world"),
	}

	for expected, data := range cases {
		if got := DetectFileType(data); got != expected {
			t.Fatalf("expected %s, got %q", expected, got)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	for _, valid := range []string{"#06b6d4", "#fff", "#0F172AFF"} {
		if !ValidateHexColor(valid) {
			t.Fatalf("expected %s to be valid", valid)
		}
	}
	for _, invalid := range []string{"06b6d4", "#12", "red", "#gggggg"} {
		if ValidateHexColor(invalid) {
			t.Fatalf("expected %s to be invalid", invalid)
		}
	}
}

func TestValidateStructUsesCustomRules(t *testing.T) {
	type themeInput struct {
		Primary string `validate:"hexcolor_css"`
		Phone   string `validate:"phone"`
	}

	if err := Validate(themeInput{Primary: "#06b6d4", Phone: "+1 (555) 010-2030"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if err := Validate(themeInput{Primary: "cyan"}); err == nil {
		t.Fatalf("expected invalid colour to fail validation")
	}
}

func TestSanitizeHTMLStripsScripts(t *testing.T) {
	out := SanitizeHTML(`<p>ok</p><script>alert(1)</script>`)
	if strings.Contains(out, "script") {
		t.Fatalf("expected script to be stripped, got %q", out)
	}
	if !strings.Contains(out, "<p>ok</p>") {
		t.Fatalf("expected paragraph to survive, got %q", out)
	}
}
