package instance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/trainingkeeper/internal/netx"
)

// DHIS2 queries a live instance through its web API.
type DHIS2 struct {
	base     string
	user     string
	password string
	client   *http.Client
}

func NewDHIS2(base, user, password string, client *http.Client) *DHIS2 {
	if client == nil {
		client = http.DefaultClient
	}
	return &DHIS2{base: strings.TrimRight(base, "/"), user: user, password: password, client: client}
}

func (d *DHIS2) newRequest(ctx context.Context, path string) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.base+path, nil)
	if err != nil {
		return nil, err
	}
	if d.user != "" {
		req.SetBasicAuth(d.user, d.password)
	}
	return req, nil
}

func (d *DHIS2) Version(ctx context.Context) (string, error) {
	req, err := d.newRequest(ctx, "/api/system/info")
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("system info: %w", err)
	}
	defer resp.Body.Close()

	body, err := netx.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("system info: %w", err)
	}

	var info struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("system info: %w", err)
	}
	return info.Version, nil
}

func (d *DHIS2) IsAppInstalledByURL(ctx context.Context, launchURL string) bool {
	if launchURL == "" {
		return true
	}
	req, err := d.newRequest(ctx, launchURL)
	if err != nil {
		return false
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return netx.IsSuccess(resp.StatusCode)
}
