package domain

import "testing"

func TestResult_First(t *testing.T) {
	r := Result{
		"title":    "Architecture Handbook",
		"authors":  []any{"First Author", "Second Author"},
		"tags":     []string{"pdf"},
		"size":     float64(1024),
		"empty":    "",
		"emptyArr": []any{},
		"nilField": nil,
	}

	tests := []struct {
		field  string
		want   string
		wantOK bool
	}{
		{"title", "Architecture Handbook", true},
		{"authors", "First Author", true},
		{"tags", "pdf", true},
		{"size", "1024", true},
		{"empty", "", false},
		{"emptyArr", "", false},
		{"nilField", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := r.First(tt.field)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("First(%q) = %q, %v; want %q, %v", tt.field, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
