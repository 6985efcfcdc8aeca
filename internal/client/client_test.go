package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isdelr/auction-lab/internal/models"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Type   string
	Body   string
}

// newBackend starts a fake API that records every request and replies with the
// given status and body.
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Type:   r.Header.Get("Content-Type"),
			Body:   string(raw),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRequest_Headers(t *testing.T) {
	tests := []struct {
		name        string
		token       TokenSource
		requireAuth bool
		wantAuth    string
	}{
		{name: "token_present", token: staticToken("abc"), wantAuth: "Bearer abc"},
		{name: "token_present_require_auth", token: staticToken("abc"), requireAuth: true, wantAuth: "Bearer abc"},
		{name: "require_auth_without_token", token: staticToken(""), requireAuth: true, wantAuth: ""},
		{name: "nil_token_source", token: nil, wantAuth: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newBackend(t, http.StatusOK, `{}`)
			c := New(srv.URL, tt.token)

			err := c.Request(context.Background(), "/ping", RequestOptions{RequireAuth: tt.requireAuth}, nil)
			require.NoError(t, err)
			require.Len(t, *calls, 1)
			require.Equal(t, tt.wantAuth, (*calls)[0].Auth)
			require.Equal(t, "application/json", (*calls)[0].Type)
			require.Equal(t, http.MethodGet, (*calls)[0].Method)
		})
	}
}

func TestRequest_BodyEncoding(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "struct", body: models.PlaceBid{Amount: 200.999999999}, want: `{"amount":200.999999999}`},
		{name: "string_verbatim", body: `{"already":"json"}`, want: `{"already":"json"}`},
		{name: "raw_message", body: json.RawMessage(`[1,2]`), want: `[1,2]`},
		{name: "map", body: map[string]any{"a": 1}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newBackend(t, http.StatusCreated, `{}`)
			c := New(srv.URL, nil)

			require.NoError(t, c.Request(context.Background(), "/x", RequestOptions{Method: http.MethodPost, Body: tt.body}, nil))
			require.Equal(t, tt.want, strings.TrimSpace((*calls)[0].Body))
		})
	}
}

func TestRequest_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message_field", status: 400, body: `{"message":"Bid too low","error":"ignored"}`, wantMsg: "Bid too low"},
		{name: "error_field_fallback", status: 404, body: `{"error":"Auction not found"}`, wantMsg: "Auction not found"},
		{name: "stack_trace_verbatim", status: 500, body: `{"message":"SQLITE_ERROR: near \"OR\"\n    at Database.all (/app/db.js:42)"}`, wantMsg: "SQLITE_ERROR: near \"OR\"\n    at Database.all (/app/db.js:42)"},
		{name: "non_string_error", status: 422, body: `{"error":{"field":"amount"}}`, wantMsg: `{"field":"amount"}`},
		{name: "unparseable_body", status: 502, body: `<html>Bad Gateway</html>`, wantMsg: "HTTP error! status: 502"},
		{name: "empty_body", status: 401, body: ``, wantMsg: "HTTP error! status: 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.body)
			c := New(srv.URL, nil)

			err := c.Request(context.Background(), "/x", RequestOptions{}, nil)
			require.Error(t, err)
			require.Equal(t, tt.wantMsg, err.Error())
			require.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestRequest_NetworkErrorIsWrapped(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	c := New("http://"+addr, nil)
	err = c.Request(context.Background(), "/x", RequestOptions{}, nil)
	require.Error(t, err)
	require.Equal(t, 0, StatusCode(err))

	var opErr *net.OpError
	require.True(t, errors.As(err, &opErr))
}

func TestRequest_EmptySuccessBody(t *testing.T) {
	srv, _ := newBackend(t, http.StatusNoContent, ``)
	c := New(srv.URL, nil)

	var out models.Auction
	require.NoError(t, c.Request(context.Background(), "/x", RequestOptions{Method: http.MethodDelete}, &out))
}

func TestEndpoints_IDsForwardedVerbatim(t *testing.T) {
	const injected = "1' OR '1'='1"

	srv, calls := newBackend(t, http.StatusOK, `{"id":"1' OR '1'='1"}`)
	c := New(srv.URL, staticToken("tok"))
	ctx := context.Background()

	_, err := c.GetAuction(ctx, injected)
	require.NoError(t, err)
	_, err = c.GetOrder(ctx, injected)
	require.NoError(t, err)
	_, err = c.GetUser(ctx, injected)
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	require.Equal(t, "/auctions/"+injected, (*calls)[0].Path)
	require.Equal(t, "/orders/"+injected, (*calls)[1].Path)
	require.Equal(t, "/users/"+injected, (*calls)[2].Path)
}

func TestPlaceBid_BareNumber(t *testing.T) {
	srv, calls := newBackend(t, http.StatusCreated, `{"id":"b1","amount":200.999999999}`)
	c := New(srv.URL, staticToken("tok"))

	bid, err := c.PlaceBid(context.Background(), "42", 200.999999999)
	require.NoError(t, err)
	require.Equal(t, 200.999999999, bid.Amount)

	require.Len(t, *calls, 1)
	require.Equal(t, http.MethodPost, (*calls)[0].Method)
	require.Equal(t, "/auctions/42/bids", (*calls)[0].Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte((*calls)[0].Body), &body))
	amount, ok := body["amount"].(float64)
	require.True(t, ok, "amount must be a JSON number")
	require.Equal(t, 200.999999999, amount)
}

func TestListAuctions_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare_array", body: `[{"id":"1"},{"id":"2"}]`, want: 2},
		{name: "named_envelope", body: `{"auctions":[{"id":"1"}]}`, want: 1},
		{name: "data_envelope", body: `{"data":[{"id":"1"},{"id":"2"},{"id":"3"}]}`, want: 3},
		{name: "null", body: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, http.StatusOK, tt.body)
			auctions, err := New(srv.URL, nil).ListAuctions(context.Background())
			require.NoError(t, err)
			require.Len(t, auctions, tt.want)
		})
	}

	srv, _ := newBackend(t, http.StatusOK, `{"items":[]}`)
	_, err := New(srv.URL, nil).ListAuctions(context.Background())
	require.Error(t, err)
}

func TestListWorkflowAuctions_Query(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, `[]`)
	c := New(srv.URL, staticToken("tok"))

	_, err := c.ListWorkflowAuctions(context.Background(), models.WorkflowFilter{Role: "seller", WorkflowState: models.WorkflowShipping})
	require.NoError(t, err)
	require.Equal(t, "/auctions/workflow", (*calls)[0].Path)
	require.Equal(t, "role=seller&workflow_state=shipping", (*calls)[0].Query)
}

func TestPutObject_NoBearerToken(t *testing.T) {
	var gotAuth, gotType, gotBody string
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	c := New("http://unused", staticToken("secret"))
	err := c.PutObject(context.Background(), storage.URL+"/bucket/key?X-Amz-Signature=x", "text/html", strings.NewReader("<script>1</script>"), 18)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
	require.Equal(t, "text/html", gotType)
	require.Equal(t, "<script>1</script>", gotBody)
}
