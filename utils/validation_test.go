package utils_test

import (
	"strings"
	"testing"
	"time"

	"donelist/utils"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{
			name:    "Valid title should pass validation",
			title:   "Complete project documentation",
			wantErr: false,
		},
		{
			name:    "Single character title should pass validation",
			title:   "x",
			wantErr: false,
		},
		{
			name:    "Empty title should fail validation",
			title:   "",
			wantErr: true,
		},
		{
			name:    "255 character title should pass validation",
			title:   strings.Repeat("a", 255),
			wantErr: false,
		},
		{
			name:    "256 character title should fail validation",
			title:   strings.Repeat("a", 256),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		tagName string
		wantErr bool
	}{
		{
			name:    "Valid tag name should pass validation",
			tagName: "errands",
			wantErr: false,
		},
		{
			name:    "Empty tag name should fail validation",
			tagName: "",
			wantErr: true,
		},
		{
			name:    "50 character tag name should pass validation",
			tagName: strings.Repeat("a", 50),
			wantErr: false,
		},
		{
			name:    "51 character tag name should fail validation",
			tagName: strings.Repeat("a", 51),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTagName(tt.tagName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTagName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{
			name:    "Uppercase hex color should pass validation",
			color:   "#3B82F6",
			wantErr: false,
		},
		{
			name:    "Lowercase hex color should pass validation",
			color:   "#ff00aa",
			wantErr: false,
		},
		{
			name:    "Missing hash should fail validation",
			color:   "3B82F6",
			wantErr: true,
		},
		{
			name:    "Three digit shorthand should fail validation",
			color:   "#fff",
			wantErr: true,
		},
		{
			name:    "Non-hex characters should fail validation",
			color:   "#3B82G6",
			wantErr: true,
		},
		{
			name:    "Trailing characters should fail validation",
			color:   "#3B82F6FF",
			wantErr: true,
		},
		{
			name:    "Empty color should fail validation",
			color:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC 3339 UTC datetime should parse",
			input: "2025-03-15T10:30:00Z",
			want:  time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC 3339 datetime with offset should parse",
			input: "2025-03-15T10:30:00+02:00",
			want:  time.Date(2025, time.March, 15, 10, 30, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name:    "Date without time should fail",
			input:   "2025-03-15",
			wantErr: true,
		},
		{
			name:    "Garbage should fail",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "Empty string should fail",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseDueDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDueDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}
