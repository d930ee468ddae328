package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/netx"
)

// HTTPFetcher downloads {base}/modules/{id}.zip.
type HTTPFetcher struct {
	base   string
	client *http.Client
}

func NewHTTPFetcher(base string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: strings.TrimRight(base, "/"), client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, id string) ([]byte, error) {
	target := f.base + "/" + ArchivePath(url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", id, common.ErrorNotFound)
	}

	body, err := netx.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	return body, nil
}
