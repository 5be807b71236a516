package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "defile/entity"
	"defile/logging"
	"defile/scroll"
)

type stubResponse struct {
	status int
	photos []nt.Photo
	err    error
}

func (sr stubResponse) StatusCode() int {
	return sr.status
}

func (sr stubResponse) Decode() ([]nt.Photo, error) {
	if sr.err != nil {
		return nil, sr.err
	}
	return sr.photos, nil
}

type stubRecorder struct {
	pages  []int
	photos [][]nt.Photo
	err    error
}

func (rec *stubRecorder) Record(ctx context.Context, page int, photos []nt.Photo) error {
	rec.pages = append(rec.pages, page)
	rec.photos = append(rec.photos, photos)
	return rec.err
}

func photos(urls ...string) []nt.Photo {
	out := []nt.Photo{}
	for i, url := range urls {
		out = append(out, nt.Photo{Id: string(rune('0' + i)), DownloadUrl: url})
	}
	return out
}

func TestPageURL(t *testing.T) {

	assert.Equal(t, "https://picsum.photos/v2/list?page=1&limit=5", PageURL(DefaultBaseURL, 1))
	assert.Equal(t, "http://local/list?page=7&limit=5", PageURL("http://local/list", 7))
}

func TestFetch(t *testing.T) {

	tests := []struct {
		name      string
		requester RequesterFunc
		expect    scroll.Event
		cause     error
	}{
		{
			name: "success keeps order",
			requester: func(ctx context.Context, url string) (Response, error) {
				return stubResponse{status: 200, photos: photos("u1", "u2", "u3")}, nil
			},
			expect: scroll.FetchSuccess{Refs: []string{"u1", "u2", "u3"}},
		},
		{
			name: "empty page ends",
			requester: func(ctx context.Context, url string) (Response, error) {
				return stubResponse{status: 200, photos: []nt.Photo{}}, nil
			},
			expect: scroll.ReachedEnd{},
		},
		{
			name: "non-200 fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				return stubResponse{status: 500, err: errors.New("should not decode")}, nil
			},
			cause: ErrStatus,
		},
		{
			name: "no content status fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				return stubResponse{status: 204}, nil
			},
			cause: ErrStatus,
		},
		{
			name: "transport error fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				return nil, errors.New("connection refused")
			},
			cause: ErrTransport,
		},
		{
			name: "panicking requester fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				panic("exception fetching")
			},
			cause: ErrTransport,
		},
		{
			name: "nil response fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				return nil, nil
			},
			cause: ErrTransport,
		},
		{
			name: "decode error fails",
			requester: func(ctx context.Context, url string) (Response, error) {
				return stubResponse{status: 200, err: errors.New("bad json")}, nil
			},
			cause: ErrParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			co := New(tc.requester, "", nil, logging.Nop())

			ev := co.Fetch(context.Background(), 1)

			if tc.cause == nil {
				assert.Equal(t, tc.expect, ev)
				return
			}
			fe, ok := ev.(scroll.FetchError)
			require.True(t, ok, "expected FetchError, got %T", ev)
			assert.True(t, errors.Is(fe.Err, tc.cause), "cause: %v", fe.Err)
		})
	}
}

func TestFetchRequestsPage(t *testing.T) {

	urls := []string{}
	co := New(RequesterFunc(func(ctx context.Context, url string) (Response, error) {
		urls = append(urls, url)
		return stubResponse{status: 200}, nil
	}), "", nil, logging.Nop())

	co.Fetch(context.Background(), 1)
	co.Fetch(context.Background(), 2)

	assert.Equal(t, []string{
		"https://picsum.photos/v2/list?page=1&limit=5",
		"https://picsum.photos/v2/list?page=2&limit=5",
	}, urls)
}

func TestFetchRecords(t *testing.T) {

	rec := &stubRecorder{err: errors.New("disk full")}
	co := New(RequesterFunc(func(ctx context.Context, url string) (Response, error) {
		return stubResponse{status: 200, photos: photos("u1", "u2")}, nil
	}), "", rec, logging.Nop())

	ev := co.Fetch(context.Background(), 3)

	assert.Equal(t, scroll.FetchSuccess{Refs: []string{"u1", "u2"}}, ev)
	assert.Equal(t, []int{3}, rec.pages)
	assert.Len(t, rec.photos[0], 2)
}

func TestFetchEmptyNotRecorded(t *testing.T) {

	rec := &stubRecorder{}
	co := New(RequesterFunc(func(ctx context.Context, url string) (Response, error) {
		return stubResponse{status: 200}, nil
	}), "", rec, logging.Nop())

	assert.Equal(t, scroll.ReachedEnd{}, co.Fetch(context.Background(), 1))
	assert.Empty(t, rec.pages)
}

func TestHTTP(t *testing.T) {

	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")

		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`[{"id":"0","author":"Alejandro Escamilla","width":5000,"height":3333,` +
				`"url":"https://unsplash.com/photos/yC-Yzbqy7PY","download_url":"https://picsum.photos/id/0/5000/3333"},` +
				`{"id":"1","author":"Alejandro Escamilla","width":5000,"height":3333,` +
				`"url":"https://unsplash.com/photos/LNRyGwIJr5c","download_url":"https://picsum.photos/id/1/5000/3333"}]`))
		case "2":
			w.Write([]byte(`[]`))
		case "3":
			w.Write([]byte(`{not json`))
		case "5":
			w.Write([]byte(`null`))
		case "6":
			w.Write([]byte(`[`))
			w.Write([]byte(strings.Repeat(" ", MaxBody)))
			w.Write([]byte(`]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	co := New(HTTP{Client: srv.Client(), UserAgent: "defile-test"}, srv.URL+"/v2/list", nil, logging.Nop())

	ev := co.Fetch(context.Background(), 1)
	assert.Equal(t, scroll.FetchSuccess{Refs: []string{
		"https://picsum.photos/id/0/5000/3333",
		"https://picsum.photos/id/1/5000/3333",
	}}, ev)
	assert.Equal(t, "page=1&limit=5", gotQuery)
	assert.Equal(t, "defile-test", gotAgent)

	assert.Equal(t, scroll.ReachedEnd{}, co.Fetch(context.Background(), 2))

	fe, ok := co.Fetch(context.Background(), 3).(scroll.FetchError)
	require.True(t, ok)
	assert.True(t, errors.Is(fe.Err, ErrParse))

	fe, ok = co.Fetch(context.Background(), 4).(scroll.FetchError)
	require.True(t, ok)
	assert.True(t, errors.Is(fe.Err, ErrStatus))

	fe, ok = co.Fetch(context.Background(), 5).(scroll.FetchError)
	require.True(t, ok, "null is not an empty page")
	assert.True(t, errors.Is(fe.Err, ErrParse))

	fe, ok = co.Fetch(context.Background(), 6).(scroll.FetchError)
	require.True(t, ok)
	assert.True(t, errors.Is(fe.Err, ErrTransport))
}

func TestHTTPUnreachable(t *testing.T) {

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	co := New(HTTP{}, url, nil, logging.Nop())

	fe, ok := co.Fetch(context.Background(), 1).(scroll.FetchError)
	require.True(t, ok)
	assert.True(t, errors.Is(fe.Err, ErrTransport))
}

func TestDecodeRequiresDownloadURL(t *testing.T) {

	resp := httpResponse{status: 200, body: []byte(`[{"id":"0"}]`)}

	_, err := resp.Decode()
	assert.Error(t, err)
}

func TestDecodeNull(t *testing.T) {

	resp := httpResponse{status: 200, body: []byte(`null`)}

	photos, err := resp.Decode()
	assert.Error(t, err)
	assert.Nil(t, photos)

	resp = httpResponse{status: 200, body: []byte(`[]`)}

	photos, err = resp.Decode()
	require.NoError(t, err)
	assert.Empty(t, photos)
}
