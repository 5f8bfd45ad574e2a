package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]ClientOption{WithHTTPClient(server.Client())}, opts...)
	return NewClient(server.URL, opts...)
}

func intPtr(n int) *int { return &n }

func TestAuthHeaders(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   map[string]string
	}{
		{
			name:   "with key",
			apiKey: "secret",
			want:   map[string]string{APIKeyHeader: "secret"},
		},
		{
			name:   "without key",
			apiKey: "",
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthHeaders(tt.apiKey)
			if got == nil {
				t.Fatal("AuthHeaders() returned nil map")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("AuthHeaders() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("AuthHeaders()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestListParams_Query(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   map[string]string
		absent []string
	}{
		{
			name:   "only limit",
			params: ListParams{Limit: 50},
			want:   map[string]string{"limit": "50"},
			absent: []string{"date", "interest", "categories", "offset"},
		},
		{
			name: "all set",
			params: ListParams{
				Date:       "2026-02-04",
				Interest:   "chosen",
				Categories: "cs.AI,cs.LG",
				Limit:      5,
				Offset:     intPtr(10),
			},
			want: map[string]string{
				"limit":      "5",
				"date":       "2026-02-04",
				"interest":   "chosen",
				"categories": "cs.AI,cs.LG",
				"offset":     "10",
			},
		},
		{
			name:   "explicit zero offset is sent",
			params: ListParams{Limit: 50, Offset: intPtr(0)},
			want:   map[string]string{"limit": "50", "offset": "0"},
			absent: []string{"date", "interest", "categories"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.params.Query()
			for k, v := range tt.want {
				if got := q.Get(k); got != v {
					t.Errorf("query[%q] = %q, want %q", k, got, v)
				}
			}
			for _, k := range tt.absent {
				if q.Has(k) {
					t.Errorf("query has %q, want it absent", k)
				}
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-02-04", false},
		{"2024-02-29", false},
		{"2026-2-4", true},
		{"2026-13-01", true},
		{"yesterday", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestListPapers_Request(t *testing.T) {
	var gotReq *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"paper_key":"abc","title":"A Paper","interest":"chosen"},{"paper_key":"def","title":"B"}]`)
	}, WithAPIKey("k1"))

	papers, err := client.ListPapers(context.Background(), ListParams{Limit: 5, Categories: "cs.AI"})
	if err != nil {
		t.Fatalf("ListPapers() error = %v", err)
	}

	if gotReq.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", gotReq.Method)
	}
	if gotReq.URL.Path != "/v1/papers" {
		t.Errorf("path = %s, want /v1/papers", gotReq.URL.Path)
	}
	if got := gotReq.Header.Get(APIKeyHeader); got != "k1" {
		t.Errorf("%s = %q, want k1", APIKeyHeader, got)
	}
	if gotReq.Header.Get(RequestIDHeader) == "" {
		t.Errorf("%s header missing", RequestIDHeader)
	}
	q := gotReq.URL.Query()
	if q.Get("limit") != "5" || q.Get("categories") != "cs.AI" {
		t.Errorf("query = %v", q)
	}
	for _, k := range []string{"date", "interest", "offset"} {
		if q.Has(k) {
			t.Errorf("query has %q, want it absent", k)
		}
	}

	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}
	if papers[0].Interest == nil || *papers[0].Interest != "chosen" {
		t.Errorf("papers[0].Interest = %v, want chosen", papers[0].Interest)
	}
	if papers[1].Interest != nil {
		t.Errorf("papers[1].Interest = %v, want nil", *papers[1].Interest)
	}
}

func TestListPapers_NoAPIKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header[http.CanonicalHeaderKey(APIKeyHeader)]; ok {
			t.Errorf("unexpected %s header", APIKeyHeader)
		}
		io.WriteString(w, `[]`)
	})

	papers, err := client.ListPapers(context.Background(), ListParams{Limit: DefaultLimit})
	if err != nil {
		t.Fatalf("ListPapers() error = %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers, want 0", len(papers))
	}
}

func TestGetPaper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/papers/4711d67c" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get(APIKeyHeader) != "k1" {
			t.Errorf("missing API key header")
		}
		io.WriteString(w, `{"paper_key":"4711d67c","title":"T","comments":[{"id":7,"source_name":"Ann","content":"nice","created_at":"2026-02-04T10:00:00"}]}`)
	}, WithAPIKey("k1"))

	paper, err := client.GetPaper(context.Background(), "4711d67c")
	if err != nil {
		t.Fatalf("GetPaper() error = %v", err)
	}
	if paper.PaperKey != "4711d67c" {
		t.Errorf("PaperKey = %q", paper.PaperKey)
	}
	if len(paper.Comments) != 1 || paper.Comments[0].ID.String() != "7" {
		t.Errorf("Comments = %+v", paper.Comments)
	}
}

func TestListComments_NoAuthHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/papers/abc/comments" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get(APIKeyHeader) != "" {
			t.Errorf("comments endpoint must not send %s", APIKeyHeader)
		}
		q := r.URL.Query()
		if q.Get("limit") != "50" {
			t.Errorf("limit = %q, want 50", q.Get("limit"))
		}
		if q.Has("offset") {
			t.Errorf("offset should be absent")
		}
		io.WriteString(w, `[{"id":"c1","source_name":"Bob","content":"hi","created_at":"now"}]`)
	}, WithAPIKey("k1"))

	comments, err := client.ListComments(context.Background(), "abc", PageParams{Limit: DefaultLimit})
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 1 || comments[0].ID.String() != "c1" {
		t.Errorf("comments = %+v", comments)
	}
}

func TestAddComment(t *testing.T) {
	var gotBody NewComment
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get(APIKeyHeader) != "" {
			t.Errorf("comment endpoint must not send %s", APIKeyHeader)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, `{"id":42,"source_name":"Bob","content":"trimmed","created_at":"2026-02-04T12:00:00Z"}`)
	}, WithAPIKey("k1"))

	created, err := client.AddComment(context.Background(), "abc", NewComment{Content: "  trimmed  ", AuthorName: "Bob"})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if gotBody.Content != "  trimmed  " || gotBody.AuthorName != "Bob" {
		t.Errorf("request body = %+v", gotBody)
	}
	if created.ID.String() != "42" || created.Content != "trimmed" || created.SourceName != "Bob" {
		t.Errorf("created = %+v", created)
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantNotFound bool
		wantAuth     bool
	}{
		{name: "not found", status: http.StatusNotFound, body: "not found", wantNotFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"bad key"}`, wantAuth: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "created is not ok", status: http.StatusCreated, body: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := client.GetPaper(context.Background(), "x")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Body != tt.body {
				t.Errorf("Body = %q, want %q", apiErr.Body, tt.body)
			}
			if IsNotFound(err) != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", IsNotFound(err), tt.wantNotFound)
			}
			if IsAuthError(err) != tt.wantAuth {
				t.Errorf("IsAuthError() = %v, want %v", IsAuthError(err), tt.wantAuth)
			}
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: 404, Body: "not found"}
	msg := err.Error()
	if !strings.Contains(msg, "404") || !strings.Contains(msg, "not found") {
		t.Errorf("Error() = %q, want status and body", msg)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>`)
	})

	_, err := client.ListPapers(context.Background(), ListParams{Limit: 1})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListPapers(context.Background(), ListParams{Limit: 1})
	if !errors.Is(err, ErrNetworkError) {
		t.Errorf("error = %v, want ErrNetworkError", err)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListPapers(ctx, ListParams{Limit: 1}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestClient_RateLimitPacesRequests(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, "[]")
	}, WithRateLimit(20))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.ListPapers(context.Background(), ListParams{Limit: 1}); err != nil {
			t.Fatalf("ListPapers() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 requests at 20/s took %v, want at least 80ms", elapsed)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server saw %d requests, want 3", n)
	}
}

func TestClient_RateLimitRespectsDeadline(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, "[]")
	}, WithRateLimit(0.01))

	if _, err := client.ListPapers(context.Background(), ListParams{Limit: 1}); err != nil {
		t.Fatalf("first ListPapers() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.ListPapers(ctx, ListParams{Limit: 1}); err == nil {
		t.Error("expected error when the limiter cannot admit the request before the deadline")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestCommentID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{`"abc-1"`, "abc-1", false},
		{`123`, "123", false},
		{`"007"`, "007", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"n":1}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id CommentID
			err := json.Unmarshal([]byte(tt.input), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && id.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, id.String(), tt.want)
			}
		})
	}
}

func TestCommentID_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{"number", `{"id":42}`, `"id":42`},
		{"string of digits", `{"id":"42"}`, `"id":"42"`},
		{"leading zeros", `{"id":"007"}`, `"id":"007"`},
		{"leading plus", `{"id":"+5"}`, `"id":"+5"`},
		{"fractional number", `{"id":1.5}`, `"id":1.5`},
		{"text", `{"id":"c-9"}`, `"id":"c-9"`},
		{"null", `{"id":null}`, `"id":null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Comment
			if err := json.Unmarshal([]byte(tt.input), &c); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			data, err := json.Marshal(c)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if !json.Valid(data) {
				t.Fatalf("Marshal() produced invalid JSON: %s", data)
			}
			if !strings.Contains(string(data), tt.wantID) {
				t.Errorf("Marshal() = %s, want it to contain %s", data, tt.wantID)
			}
		})
	}
}

func TestNewCommentID(t *testing.T) {
	data, err := json.Marshal(Comment{ID: NewCommentID("42")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"id":"42"`) {
		t.Errorf("string id written as %s", data)
	}
	if got := NewCommentID("c-9").String(); got != "c-9" {
		t.Errorf("String() = %q, want c-9", got)
	}
	if !(CommentID{}).IsZero() {
		t.Error("zero CommentID should report IsZero")
	}
}
