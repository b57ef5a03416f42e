package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/survey/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}
}

func group() routes.Group {
	return routes.Group{
		Prefix: "/runs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: respond("list")},
			{Method: "GET", Pattern: "/{id}", Handler: respond("find")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/fields",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: respond("fields")},
				},
			},
		},
	}
}

func TestPatterns(t *testing.T) {
	want := []string{"GET /runs", "GET /runs/{id}", "GET /runs/{id}/fields"}
	if diff := cmp.Diff(want, group().Patterns()); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, group())

	tests := []struct {
		method, path, want string
		status             int
	}{
		{"GET", "/runs", "list", http.StatusOK},
		{"GET", "/runs/abc", "find", http.StatusOK},
		{"GET", "/runs/abc/fields", "fields", http.StatusOK},
		{"POST", "/runs", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.want != "" && rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}
