package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cvgen/pkg/model"
)

func TestFinishPackage_ReferencesFooter(t *testing.T) {
	data, err := Render(context.Background(), model.Default(), Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	checks := map[string]string{
		documentPart:     `<w:footerReference w:type="default" r:id="` + footerRelID + `"/>`,
		documentRelsPart: `Id="` + footerRelID + `"`,
		contentTypesPart: `PartName="/` + footerPart + `"`,
	}
	for name, want := range checks {
		part, err := packagePart(data, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.Contains(string(part), want) {
			t.Fatalf("expected %s to contain %q", name, want)
		}
	}
}

func TestPackagePart_Missing(t *testing.T) {
	data, err := Render(context.Background(), model.Default(), Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := packagePart(data, "word/header1.xml"); !errors.Is(err, ErrMissingPart) {
		t.Fatalf("expected ErrMissingPart, got %v", err)
	}
}
