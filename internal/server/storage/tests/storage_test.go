package tests

import (
	"testing"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/storage"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "chest.jpeg", "chest.jpeg"},
		{"unix path stripped", "/tmp/evil/chest.jpeg", "chest.jpeg"},
		{"windows path stripped", `C:\fakepath\chest.jpeg`, "chest.jpeg"},
		{"traversal collapses", "../../etc/passwd", "passwd"},
		{"spaces replaced", "my scan.jpeg", "my_scan.jpeg"},
		{"unicode replaced", "снимок.png", "______.png"},
		{"dots only", "...", ""},
		{"empty", "", ""},
		{"separators only", "///", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := storage.SanitizeFilename(tc.in); got != tc.want {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestReportName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"chest.jpeg", "report_chest.pdf"},
		{"scan.v2.png", "report_scan.pdf"}, // stem до ПЕРВОЙ точки
		{"noext", "report_noext.pdf"},
	}

	for _, tc := range cases {
		if got := storage.ReportName(tc.in); got != tc.want {
			t.Fatalf("ReportName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
