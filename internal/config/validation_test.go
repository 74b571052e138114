package config

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{"zero value is valid", Document{}, false},
		{"valid enums", Document{SortBy: "mod_time", SortOrder: "descending", SerializeFormat: "json"}, false},
		{"bad sort_by", Document{SortBy: "bogus"}, true},
		{"bad sort_order", Document{SortOrder: "bogus"}, true},
		{"bad serialize_format", Document{SerializeFormat: "bogus"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.doc)
			if c.wantErr && err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidationErrorsAggregates(t *testing.T) {
	err := Validate(Document{SortBy: "bogus", SortOrder: "bogus"})
	if err == nil {
		t.Fatal("expected an error")
	}
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", len(errs), errs)
	}
}
