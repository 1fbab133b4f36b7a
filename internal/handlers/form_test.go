package handlers

import (
	"encoding/json"
	"testing"
)

func TestFormValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *string
		wantErr bool
	}{
		{"string", `{"quantity":"12"}`, strPtr("12"), false},
		{"number", `{"quantity":12}`, strPtr("12"), false},
		{"negative number", `{"quantity":-3}`, strPtr("-3"), false},
		{"free text kept raw", `{"quantity":"doce"}`, strPtr("doce"), false},
		{"empty string", `{"quantity":""}`, strPtr(""), false},
		{"omitted", `{}`, nil, false},
		{"array", `{"quantity":[1]}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateProductRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			got := req.Quantity.ptr()
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ptr() = %q, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("ptr() = %v, want %q", got, *tt.want)
			}
		})
	}
}

func TestFormValue_TextOfNil(t *testing.T) {
	var v *FormValue
	if v.text() != "" {
		t.Error("text() of a missing value should be empty")
	}
}

func strPtr(s string) *string {
	return &s
}
