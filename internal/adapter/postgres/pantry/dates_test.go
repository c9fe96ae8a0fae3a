package pantry

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	structured := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	text := "2024-01-01"

	tests := []struct {
		name    string
		in      any
		want    *time.Time
		wantErr bool
	}{
		{name: "nil", in: nil},
		{name: "empty string is unbounded", in: ""},
		{name: "nil string pointer", in: (*string)(nil)},
		{name: "date text", in: "2024-01-01", want: day(2024, 1, 1)},
		{name: "string pointer", in: &text, want: day(2024, 1, 1)},
		{name: "rfc3339 text drops time of day", in: "2024-12-31T18:45:00+02:00", want: day(2024, 12, 31)},
		{name: "structured value passes through", in: structured, want: &structured},
		{name: "garbage", in: "soon", wantErr: true},
		{name: "unsupported type", in: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("parseDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if formatDate(nil) != nil {
		t.Error("nil bound should format as NULL")
	}

	local := time.Date(2024, 1, 1, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	if got := formatDate(&local); got == nil || *got != "2024-01-01" {
		t.Errorf("formatDate = %v, want calendar date in the value's own zone", got)
	}
}
