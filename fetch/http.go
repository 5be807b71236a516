package fetch

import (
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	nt "defile/entity"
)

// MaxBody caps how much of a response is read.
const MaxBody = 4 << 20

// HTTP requests pages over net/http.
type HTTP struct {
	Client    *http.Client
	UserAgent string
}

// Request gets url and reads the body, up to MaxBody.
func (hc HTTP) Request(ctx context.Context, url string) (Response, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if hc.UserAgent != "" {
		req.Header.Set("User-Agent", hc.UserAgent)
	}

	client := hc.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body")
	}
	if len(body) > MaxBody {
		return nil, errors.Errorf("body exceeds %d bytes", MaxBody)
	}

	return httpResponse{status: resp.StatusCode, body: body}, nil
}

type httpResponse struct {
	status int
	body   []byte
}

func (hr httpResponse) StatusCode() int {
	return hr.status
}

// Decode unmarshals the body as a list of photos.
func (hr httpResponse) Decode() (photos []nt.Photo, err error) {

	err = json.Unmarshal(hr.body, &photos)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal photos")
		return
	}
	if photos == nil {
		err = errors.Errorf("body is not a list of photos")
		return
	}

	for i, photo := range photos {
		if photo.DownloadUrl == "" {
			err = errors.Errorf("record %d has no download_url", i)
			return
		}
	}
	return
}
