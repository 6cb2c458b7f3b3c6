package formatting_test

import (
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptvault/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"bytes unit", "512B", 512, false},
		{"kilobytes", "64KB", 64 * 1024, false},
		{"megabytes", "1MB", 1024 * 1024, false},
		{"fractional", "1.5MB", 1536 * 1024, false},
		{"lowercase unit", "10mb", 10 * 1024 * 1024, false},
		{"with space", "100 KB", 100 * 1024, false},
		{"surrounding whitespace", "  2MB  ", 2 * 1024 * 1024, false},
		{"zero", "0", 0, false},
		{"empty string", "", 0, true},
		{"unknown unit", "50XX", 0, true},
		{"no number", "MB", 0, true},
		{"negative", "-5MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 500, 0, "500 B"},
		{"one KB", 1024, 0, "1 KB"},
		{"one MB", 1024 * 1024, 0, "1 MB"},
		{"fractional MB", 1536 * 1024, 1, "1.5 MB"},
		{"negative precision clamped to zero", 1024, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestBytesString(t *testing.T) {
	tests := []struct {
		b    formatting.Bytes
		want string
	}{
		{formatting.Bytes(1024 * 1024), "1 MB"},
		{formatting.Bytes(1536 * 1024), "1.50 MB"},
		{formatting.Bytes(0), "0 B"},
	}

	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBytesTOML(t *testing.T) {
	var cfg struct {
		MaxBodySize formatting.Bytes `toml:"max_body_size"`
	}

	if err := toml.Unmarshal([]byte(`max_body_size = "512KB"`), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.MaxBodySize != 512*1024 {
		t.Errorf("max_body_size: got %d, want %d", cfg.MaxBodySize, 512*1024)
	}

	if err := toml.Unmarshal([]byte(`max_body_size = "lots"`), &cfg); err == nil {
		t.Error("expected error for invalid size")
	}
}
