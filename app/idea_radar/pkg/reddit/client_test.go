package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source"
)

const topPayload = `{
  "data": {
    "children": [
      {"data": {"title": "Launched my SaaS", "selftext": "%s", "permalink": "/r/SaaS/comments/abc/launched/", "score": 120, "num_comments": 33, "created_utc": 1700000000}},
      {"data": {"title": "Pricing question", "selftext": "", "permalink": "/r/SaaS/comments/def/pricing/", "score": 7, "num_comments": 2}}
    ]
  }
}`

func TestFetch(t *testing.T) {
	long := strings.Repeat("a", 800)
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(strings.Replace(topPayload, "%s", long, 1)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "SaaS", time.Second, WithTimeRange("week"), WithLimit(10))
	records, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/r/SaaS/top.json", gotPath)
	assert.Contains(t, gotQuery, "t=week")
	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, gotUA, "Mozilla")

	require.Len(t, records, 2)
	first := records[0]
	assert.Equal(t, "Launched my SaaS", first.Title)
	assert.Len(t, []rune(first.Content), MaxContentLength)
	assert.Equal(t, "https://reddit.com/r/SaaS/comments/abc/launched/", first.URL)
	assert.Equal(t, 120, *first.Score)
	assert.Equal(t, 33, *first.Comments)
	assert.Equal(t, "2023-11-14T22:13:20Z", first.Timestamp)
	assert.Equal(t, model.KindForum, first.Kind)
	assert.Equal(t, "r/SaaS", first.SourceName)
	assert.Empty(t, records[1].Timestamp)
}

func TestFetchKeepsBasePathAndEscapesCommunity(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL+"/proxy/", "side projects", time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/proxy/r/side%20projects/top.json", gotPath)
}

func TestFetchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Replace(topPayload, "%s", "body", 1)))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL, "SaaS", time.Second, WithLimit(1)).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>nope</html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, "startups", time.Second)
			records, err := c.Fetch(context.Background())
			assert.Nil(t, records)

			var fe *source.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "r/startups", fe.Source)
			assert.Equal(t, model.KindForum, fe.Kind)

			// 经过 Collect 适配后降级为空结果
			assert.Empty(t, source.Collect(context.Background(), c))
		})
	}
}
