package strcase

import "testing"

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Calculator", "calculator"},
		{"MyModule", "my_module"},
		{"getValue", "get_value"},
		{"HTTPServer", "http_server"},
		{"already_snake", "already_snake"},
		{"With Space", "with_space"},
		{"ABC", "abc"},
		{"value2Go", "value2_go"},
	}
	for _, tt := range tests {
		if got := SnakeCase(tt.in); got != tt.want {
			t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPascalCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"calculator", "Calculator"},
		{"my_module", "MyModule"},
		{"getValue", "GetValue"},
		{"HTTPServer", "HttpServer"},
		{"Already", "Already"},
	}
	for _, tt := range tests {
		if got := PascalCase(tt.in); got != tt.want {
			t.Errorf("PascalCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MyModule", "myModule"},
		{"my_module", "myModule"},
		{"getValue", "getValue"},
		{"X", "x"},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.in); got != tt.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlatCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MyModule", "mymodule"},
		{"my_module", "mymodule"},
		{"Calculator", "calculator"},
	}
	for _, tt := range tests {
		if got := FlatCase(tt.in); got != tt.want {
			t.Errorf("FlatCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
