package fixtures

import (
	"fmt"
	"testing"

	"github.com/tamkeenai/careerd/internal/core/domain"
)

func sampleJobs() []any {
	return []any{
		map[string]any{
			"title":       "Software Engineer",
			"description": "Backend services",
			"company":     map[string]any{"name": "TamkeenAI"},
			"location":    "Dubai, UAE",
		},
		map[string]any{
			"title":       "Career Coach",
			"description": "Helps engineers grow",
			"company":     "Future Talent Hub",
			"location":    "Sharjah, UAE",
		},
		map[string]any{
			"title":       "Data Analyst",
			"description": "Labor market reports",
			"company":     "Engineer Staffing LLC",
			"location":    "Abu Dhabi, UAE",
		},
		map[string]any{
			"title":    "Product Manager",
			"company":  map[string]any{"name": "Gulf Cloud"},
			"location": "Dubai, UAE",
		},
		map[string]any{
			// No searchable fields at all.
			"id": "job-x",
		},
	}
}

func TestFilter_Search(t *testing.T) {
	// "engineer" matches title, description, and both company shapes;
	// the item with no fields is excluded.
	got := Filter(sampleJobs(), domain.Query{Search: "engineer"})
	if len(got) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(got))
	}

	// Case-insensitive.
	got = Filter(sampleJobs(), domain.Query{Search: "ENGINEER"})
	if len(got) != 3 {
		t.Errorf("Expected case-insensitive match, got %d", len(got))
	}
}

func TestFilter_CompanyShapes(t *testing.T) {
	// Company as object.
	got := Filter(sampleJobs(), domain.Query{Search: "tamkeenai"})
	if len(got) != 1 {
		t.Errorf("Expected 1 match on company object name, got %d", len(got))
	}

	// Company as plain string.
	got = Filter(sampleJobs(), domain.Query{Search: "future talent"})
	if len(got) != 1 {
		t.Errorf("Expected 1 match on company string, got %d", len(got))
	}
}

func TestFilter_Location(t *testing.T) {
	got := Filter(sampleJobs(), domain.Query{Location: "dubai"})
	if len(got) != 2 {
		t.Errorf("Expected 2 Dubai jobs, got %d", len(got))
	}

	// Search and location combine.
	got = Filter(sampleJobs(), domain.Query{Search: "engineer", Location: "sharjah"})
	if len(got) != 1 {
		t.Errorf("Expected 1 combined match, got %d", len(got))
	}
}

func TestFilter_EmptyQueryKeepsAll(t *testing.T) {
	got := Filter(sampleJobs(), domain.Query{})
	if len(got) != 5 {
		t.Errorf("Expected all items with no filter, got %d", len(got))
	}
}

func TestPaginate(t *testing.T) {
	items := make([]any, 25)
	for i := range items {
		items[i] = map[string]any{"id": fmt.Sprintf("job-%02d", i)}
	}

	// For N=25 and p=10, page k holds min(p, max(0, N-(k-1)*p)) items.
	cases := []struct {
		page, pageSize int
		wantLen        int
		wantPages      int
	}{
		{1, 10, 10, 3},
		{2, 10, 10, 3},
		{3, 10, 5, 3},
		{4, 10, 0, 3},
		{1, 25, 25, 1},
		{1, 7, 7, 4},
	}
	for _, tc := range cases {
		page := Paginate(items, domain.Query{Page: tc.page, PageSize: tc.pageSize})
		if len(page.Items) != tc.wantLen {
			t.Errorf("page=%d size=%d: expected %d items, got %d",
				tc.page, tc.pageSize, tc.wantLen, len(page.Items))
		}
		if page.TotalPages != tc.wantPages {
			t.Errorf("page=%d size=%d: expected %d total pages, got %d",
				tc.page, tc.pageSize, tc.wantPages, page.TotalPages)
		}
		if page.Total != 25 {
			t.Errorf("Expected total 25, got %d", page.Total)
		}
	}
}

func TestPaginate_Defaults(t *testing.T) {
	items := make([]any, 15)
	for i := range items {
		items[i] = map[string]any{"id": i}
	}

	page := Paginate(items, domain.Query{})
	if page.Page != 1 || page.PageSize != 10 {
		t.Errorf("Expected defaults page=1 pageSize=10, got %d/%d", page.Page, page.PageSize)
	}
	if len(page.Items) != 10 {
		t.Errorf("Expected 10 items on default first page, got %d", len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Errorf("Expected 2 pages, got %d", page.TotalPages)
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate(nil, domain.Query{})
	if len(page.Items) != 0 || page.Total != 0 || page.TotalPages != 0 {
		t.Errorf("Expected empty page, got %+v", page)
	}
}
