package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/netx"
	"github.com/sethvargo/go-retry"
)

// DefaultPoEditorEndpoint is the PoEditor v2 API root.
const DefaultPoEditorEndpoint = "https://api.poeditor.com/v2/"

const maxRetries = 3

// PoEditor is a Provider backed by the PoEditor v2 API. Projects are
// numeric PoEditor project ids.
type PoEditor struct {
	endpoint string
	token    string
	client   *http.Client
	backoff  time.Duration
}

func NewPoEditor(endpoint, token string, client *http.Client) *PoEditor {
	if endpoint == "" {
		endpoint = DefaultPoEditorEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &PoEditor{
		endpoint: strings.TrimRight(endpoint, "/") + "/",
		token:    token,
		client:   client,
		backoff:  100 * time.Millisecond,
	}
}

type poResponse struct {
	Response struct {
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"response"`
	Result json.RawMessage `json:"result"`
}

type poLanguages struct {
	Languages []struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"languages"`
}

type poTerms struct {
	Terms []struct {
		Term        string `json:"term"`
		Translation struct {
			// Content is a string, or an object for plural terms.
			Content json.RawMessage `json:"content"`
		} `json:"translation"`
	} `json:"terms"`
}

func projectID(project string) (string, error) {
	if _, err := strconv.Atoi(strings.TrimSpace(project)); err != nil {
		return "", fmt.Errorf("invalid poeditor project %q: %w", project, err)
	}
	return strings.TrimSpace(project), nil
}

func (p *PoEditor) ListLanguages(ctx context.Context, project string) ([]string, error) {
	id, err := projectID(project)
	if err != nil {
		return nil, err
	}

	var result poLanguages
	if err := p.call(ctx, "languages/list", url.Values{"id": {id}}, &result); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(result.Languages))
	for _, l := range result.Languages {
		out = append(out, l.Code)
	}
	return out, nil
}

// ListTerms returns the terms translated into language. Untranslated and
// plural terms are left out.
func (p *PoEditor) ListTerms(ctx context.Context, project, language string) ([]Term, error) {
	id, err := projectID(project)
	if err != nil {
		return nil, err
	}

	var result poTerms
	if err := p.call(ctx, "terms/list", url.Values{"id": {id}, "language": {language}}, &result); err != nil {
		return nil, err
	}

	out := make([]Term, 0, len(result.Terms))
	for _, t := range result.Terms {
		var content string
		if err := json.Unmarshal(t.Translation.Content, &content); err != nil {
			continue
		}
		out = append(out, Term{Term: t.Term, Translation: content})
	}
	return out, nil
}

func (p *PoEditor) call(ctx context.Context, method string, form url.Values, result any) error {
	form.Set("api_token", p.token)

	var body []byte
	policy := retry.WithMaxRetries(maxRetries, retry.NewExponential(p.backoff))
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		var err error
		body, err = p.post(ctx, method, form)
		return err
	})
	if err != nil {
		return fmt.Errorf("poeditor %s: %w", method, err)
	}

	var resp poResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("poeditor %s: malformed response: %w", method, err)
	}
	if resp.Response.Status != "success" {
		return fmt.Errorf("poeditor %s: %s (code %s)", method, resp.Response.Message, resp.Response.Code)
	}
	if len(resp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("poeditor %s: malformed result: %w", method, err)
	}
	return nil
}

// post sends one request. Network failures, 429 and 5xx are retryable.
func (p *PoEditor) post(ctx context.Context, method string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+method, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := netx.ReadBody(resp)
	var se *netx.StatusError
	switch {
	case errors.As(err, &se) && !se.Transient():
		return nil, err
	case err != nil:
		return nil, retry.RetryableError(err)
	}
	return body, nil
}
