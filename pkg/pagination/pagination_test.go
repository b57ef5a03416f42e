package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/survey/pkg/pagination"
	"github.com/JaimeStill/survey/pkg/query"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&page_size=10", 3, 10},
		{"clamped", "page=-2&page_size=500", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize {
				t.Errorf("page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}

	t.Run("search and sort", func(t *testing.T) {
		values, _ := url.ParseQuery("search=fraud&sort=-CreatedAt")
		req := pagination.PageRequestFromQuery(values, cfg)
		if req.Search == nil || *req.Search != "fraud" {
			t.Errorf("search = %v", req.Search)
		}
		want := pagination.SortFields{{Field: "CreatedAt", Descending: true}}
		if diff := cmp.Diff(want, req.Sort); diff != "" {
			t.Errorf("sort mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string form", `{"sort":"Topic,-CreatedAt"}`},
		{"array form", `{"sort":[{"field":"Topic"},{"field":"CreatedAt","descending":true}]}`},
	}

	want := pagination.SortFields{
		query.SortField{Field: "Topic"},
		query.SortField{Field: "CreatedAt", Descending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req pagination.PageRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(want, req.Sort); diff != "" {
				t.Errorf("sort mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		total, size, wantPages int
	}{
		{0, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{95, 10, 10},
	}

	for _, tt := range tests {
		r := pagination.NewPageResult[int](nil, tt.total, 1, tt.size)
		if r.TotalPages != tt.wantPages {
			t.Errorf("total=%d size=%d: pages = %d, want %d", tt.total, tt.size, r.TotalPages, tt.wantPages)
		}
		if r.Data == nil {
			t.Error("Data is nil")
		}
	}
}

func TestConfigFinalize(t *testing.T) {
	c := pagination.Config{DefaultPageSize: 200, MaxPageSize: 50}
	if err := c.Finalize(nil); err == nil {
		t.Error("expected error when default exceeds max")
	}

	var d pagination.Config
	if err := d.Finalize(nil); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if d.DefaultPageSize != 20 || d.MaxPageSize != 100 {
		t.Errorf("defaults = %+v", d)
	}
}
