// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/pdiddy/litagent/pkg/types"
)

const sampleCrossrefJSON = `{
  "status": "ok",
  "message": {
    "items": [
      {
        "title": ["Enhancement-mode GaN HEMT for RF power amplifiers"],
        "DOI": "10.1109/ted.2023.1234567",
        "URL": "https://doi.org/10.1109/ted.2023.1234567",
        "abstract": "We report a fabricated enhancement-mode device.",
        "publisher": "IEEE",
        "container-title": ["IEEE Transactions on Electron Devices"],
        "issued": {"date-parts": [[2023, 5, 12]]},
        "author": [
          {"family": "Tanaka", "given": "Hiroshi"},
          {"family": "Lee", "given": "Mina"}
        ]
      },
      {
        "title": ["A survey without identifiers"],
        "DOI": "",
        "URL": "",
        "container-title": "Journal of Surveys",
        "issued": {"date-parts": []}
      }
    ]
  }
}`

func testBackend(t *testing.T, handler http.HandlerFunc) *CrossrefBackend {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	orig := crossrefBase
	crossrefBase = ts.URL
	t.Cleanup(func() { crossrefBase = orig })

	return NewCrossref(types.SourceConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "litagent/test"},
		Rows:       20,
		Mailto:     "bot@example.org",
	})
}

func TestCrossrefSearch(t *testing.T) {
	var gotQuery url.Values
	var gotUA string
	b := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleCrossrefJSON))
	})

	items, err := b.Search(context.Background(), "GaN HEMT", "2010-01-01")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if got := gotQuery.Get("query.bibliographic"); got != "GaN HEMT" {
		t.Errorf("query.bibliographic = %q", got)
	}
	if got := gotQuery.Get("filter"); got != "from-pub-date:2010-01-01" {
		t.Errorf("filter = %q", got)
	}
	if got := gotQuery.Get("rows"); got != "20" {
		t.Errorf("rows = %q", got)
	}
	if got := gotQuery.Get("mailto"); got != "bot@example.org" {
		t.Errorf("mailto = %q", got)
	}
	if gotUA != "litagent/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title[0] != "Enhancement-mode GaN HEMT for RF power amplifiers" {
		t.Errorf("title = %q", first.Title[0])
	}
	if first.DOI != "10.1109/ted.2023.1234567" {
		t.Errorf("DOI = %q", first.DOI)
	}
	if got := first.ContainerTitle.First(); got != "IEEE Transactions on Electron Devices" {
		t.Errorf("container-title (list form) = %q", got)
	}
	if year, ok := first.Issued.Year(); !ok || year != 2023 {
		t.Errorf("year = %d, %v", year, ok)
	}
	if len(first.Authors) != 2 || first.Authors[0].Family != "Tanaka" {
		t.Errorf("authors = %+v", first.Authors)
	}

	second := items[1]
	if got := second.ContainerTitle.First(); got != "Journal of Surveys" {
		t.Errorf("container-title (string form) = %q", got)
	}
	if _, ok := second.Issued.Year(); ok {
		t.Error("empty date-parts should report no year")
	}
}

func TestCrossrefSearchHTTPError(t *testing.T) {
	b := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := b.Search(context.Background(), "GaN", "2010-01-01"); err == nil {
		t.Error("Search() expected error on HTTP 500")
	}
}

func TestCrossrefSearchBadJSON(t *testing.T) {
	b := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message": {`))
	})

	if _, err := b.Search(context.Background(), "GaN", "2010-01-01"); err == nil {
		t.Error("Search() expected error on malformed body")
	}
}

func TestContainerTitleUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"list", `["Journal A", "Journal B"]`, "Journal A"},
		{"string", `"Journal C"`, "Journal C"},
		{"empty list", `[]`, ""},
		{"empty string", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ContainerTitle
			if err := c.UnmarshalJSON([]byte(tt.json)); err != nil {
				t.Fatalf("UnmarshalJSON(%s) error: %v", tt.json, err)
			}
			if got := c.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}
