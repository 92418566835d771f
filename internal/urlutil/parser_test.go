package urlutil

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://delhihighcourt.nic.in/app/get-case-type-status", false},
		{"http", "http://example.org/doc.pdf", false},
		{"ftp scheme", "ftp://example.org/doc.pdf", true},
		{"missing host", "https://", true},
		{"relative", "/orders/order.pdf", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://example.org/case/", "docs/order.pdf", "https://example.org/case/docs/order.pdf"},
		{"root relative", "https://example.org/case/", "/orders/1.pdf", "https://example.org/orders/1.pdf"},
		{"absolute untouched", "https://example.org/", "https://other.org/x.pdf", "https://other.org/x.pdf"},
		{"query preserved", "https://example.org/", "view?id=1", "https://example.org/view?id=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.base, tt.href); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}
