package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

const iosConfig = `VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active
20   guest                            active    Gi1/0/1

Building configuration...

Current configuration : 512 bytes
!
hostname sw1
!
interface GigabitEthernet1/0/1
 description ap1
 switchport mode access
 switchport access vlan 20
!
end
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewServer(Config{
		Disclaimer:   Disclaimer{Disclaimer: "internal use only", GithubURL: "https://example.com/repo"},
		TemplateName: "campus",
		Logger:       logger,
	})
}

func do(t *testing.T, s *Server, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	decode(t, rec, &resp)
	if !resp.Success || resp.Data.Status != "ok" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestDisclaimer(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/disclaimer", nil)
	var got map[string]string
	decode(t, rec, &got)
	want := map[string]string{"disclaimer": "internal use only", "github_url": "https://example.com/repo"}
	if len(got) != len(want) || got["disclaimer"] != want["disclaimer"] || got["github_url"] != want["github_url"] {
		t.Errorf("disclaimer = %v, want %v", got, want)
	}
}

func TestDisclaimerFromEnv(t *testing.T) {
	t.Setenv("APP_DISCLAIMER", "from env")
	t.Setenv("APP_GITHUB_URL", "")
	t.Setenv("APP_DOCKER_URL", "docker.io/x")

	got := DisclaimerFromEnv(Disclaimer{Disclaimer: "file", GithubURL: "gh"})
	want := Disclaimer{Disclaimer: "from env", GithubURL: "gh", DockerURL: "docker.io/x"}
	if got != want {
		t.Errorf("DisclaimerFromEnv() = %+v, want %+v", got, want)
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("PORT", "")
	if got := ListenAddr(""); got != DefaultAddr {
		t.Errorf("ListenAddr(\"\") = %q", got)
	}
	if got := ListenAddr("127.0.0.1:8080"); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddr(addr) = %q", got)
	}
	t.Setenv("PORT", "9000")
	if got := ListenAddr("127.0.0.1:8080"); got != ":9000" {
		t.Errorf("ListenAddr with PORT = %q", got)
	}
}

func TestConvert(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(ConvertRequest{Files: []InputFile{
		{Name: "sw1.txt", Content: iosConfig},
		{Name: "notes.txt", Content: "hello"},
	}})
	rec := do(t, s, http.MethodPost, "/api/convert", bytes.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Template struct {
				Name       string                     `json:"name"`
				Networks   map[string]json.RawMessage `json:"networks"`
				PortUsages map[string]json.RawMessage `json:"port_usages"`
			} `json:"template"`
			Files []struct {
				Name          string `json:"name"`
				Format        string `json:"format"`
				SuccessConfig bool   `json:"success_config"`
				ErrorMessage  string `json:"error_message"`
			} `json:"files"`
			Events []struct {
				Level string `json:"level"`
				File  string `json:"file"`
				RunID string `json:"run_id"`
			} `json:"events"`
		} `json:"data"`
	}
	decode(t, rec, &resp)

	if resp.Data.Template.Name != "campus" {
		t.Errorf("template name = %q", resp.Data.Template.Name)
	}
	if _, ok := resp.Data.Template.Networks["guest"]; !ok {
		t.Errorf("networks = %v", resp.Data.Template.Networks)
	}
	if _, ok := resp.Data.Template.PortUsages["ap1"]; !ok {
		t.Errorf("port_usages = %v", resp.Data.Template.PortUsages)
	}
	if len(resp.Data.Files) != 2 {
		t.Fatalf("files = %+v", resp.Data.Files)
	}
	if f := resp.Data.Files[0]; f.Format != "ios" || !f.SuccessConfig {
		t.Errorf("sw1.txt = %+v", f)
	}
	if f := resp.Data.Files[1]; f.Format != "unknown" || f.SuccessConfig || f.ErrorMessage == "" {
		t.Errorf("notes.txt = %+v", f)
	}

	var sawFileError bool
	for _, e := range resp.Data.Events {
		if e.RunID == "" {
			t.Errorf("event without run id: %+v", e)
		}
		if e.File == "notes.txt" && e.Level == "error" {
			sawFileError = true
		}
	}
	if !sawFileError {
		t.Error("expected an error event for notes.txt")
	}

	metrics := do(t, s, http.MethodGet, "/metrics", nil).Body.String()
	for _, want := range []string{
		`mistconv_conversions_total{result="ok"} 1`,
		`mistconv_files_total{format="ios"} 1`,
		`mistconv_files_total{format="unknown"} 1`,
	} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestConvertBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", "{", http.StatusBadRequest},
		{"no files", `{"files":[]}`, http.StatusBadRequest},
		{"unnamed file", `{"files":[{"content":"x"}]}`, http.StatusBadRequest},
		{"duplicate names", `{"files":[{"name":"a","content":"x"},{"name":"a","content":"y"}]}`, http.StatusBadRequest},
		{"export without store", `{"files":[{"name":"a","content":"x"}],"export":true}`, http.StatusBadRequest},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/convert", strings.NewReader(tt.body))
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			var resp Response
			decode(t, rec, &resp)
			if resp.Success || resp.Error == "" {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/convert", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
