package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/agent/cli"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/agent/config"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

func TestNewRecordsCmd_Success_PrintsTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/records", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Fatalf("expected Authorization Bearer token-1, got %q", auth)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"filename": "chest.jpeg", "label": "PNEUMONIA", "confidence": 97.42, "timestamp": "2026-08-28 10:00:00"},
				{"filename": "lung.png", "label": "NORMAL", "confidence": 88.1, "timestamp": "2026-08-28 10:05:00"},
			},
		})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	app := &cli.App{
		ServerURL: srv.URL,
		Creds:     &config.Credentials{Token: "token-1"},
	}

	cmd := cli.NewRecordsCmd(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "FILENAME") || !strings.Contains(got, "TIMESTAMP") {
		t.Fatalf("expected table header, got %q", got)
	}
	if !strings.Contains(got, "chest.jpeg") || !strings.Contains(got, "PNEUMONIA") {
		t.Fatalf("expected first record, got %q", got)
	}
	if !strings.Contains(got, "lung.png") || !strings.Contains(got, "NORMAL") {
		t.Fatalf("expected second record, got %q", got)
	}

	// записи выводятся в порядке добавления
	if strings.Index(got, "chest.jpeg") > strings.Index(got, "lung.png") {
		t.Fatalf("expected chest.jpeg before lung.png, got %q", got)
	}
}

func TestNewRecordsCmd_Empty_PrintsNoRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/records", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"records": []any{}})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	app := &cli.App{
		ServerURL: srv.URL,
		Creds:     &config.Credentials{Token: "token-1"},
	}

	cmd := cli.NewRecordsCmd(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if got := out.String(); !strings.Contains(got, "no records") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNewRecordsCmd_NotLoggedIn_ReturnsError(t *testing.T) {
	app := &cli.App{
		ServerURL: "https://127.0.0.1:8080",
		Creds:     &config.Credentials{},
	}

	cmd := cli.NewRecordsCmd(app)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("%s: %v", serr.ErrUnexpectedError.Error(), err)
	}
}
