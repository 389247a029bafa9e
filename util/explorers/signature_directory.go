package explorers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tranvictor/humanizer/humanizer"
)

const DefaultSignatureAPI = "https://www.4byte.directory"

// SignatureDirectory looks up text signatures of 4-byte selectors on a
// 4byte.directory compatible API.
type SignatureDirectory struct {
	Domain string
	client *http.Client
}

func NewSignatureDirectory(domain string, client *http.Client) *SignatureDirectory {
	if domain == "" {
		domain = DefaultSignatureAPI
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SignatureDirectory{
		Domain: strings.TrimRight(domain, "/"),
		client: client,
	}
}

func (sd *SignatureDirectory) LookupURL(selector string) string {
	return fmt.Sprintf(
		"%s/api/v1/signatures/?hex_signature=%s",
		sd.Domain,
		url.QueryEscape(strings.ToLower(selector)),
	)
}

type signatureResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID            int64  `json:"id"`
		TextSignature string `json:"text_signature"`
		HexSignature  string `json:"hex_signature"`
	} `json:"results"`
}

// LookupSelector returns the oldest registered signature for selector. When
// the directory has none, the error wraps humanizer.ErrNotFound.
func (sd *SignatureDirectory) LookupSelector(ctx context.Context, selector string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sd.LookupURL(selector), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := sd.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("selector %s: %w", selector, humanizer.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error from %s: status %d", sd.Domain, resp.StatusCode)
	}
	sigs := signatureResponse{}
	if err := json.Unmarshal(body, &sigs); err != nil {
		return "", fmt.Errorf(
			"couldn't unmarshal %s to signature response, err: %w",
			string(body),
			err,
		)
	}
	best := -1
	for i, r := range sigs.Results {
		if r.TextSignature == "" {
			continue
		}
		if best < 0 || r.ID < sigs.Results[best].ID {
			best = i
		}
	}
	if best < 0 {
		return "", fmt.Errorf("selector %s: %w", selector, humanizer.ErrNotFound)
	}
	return sigs.Results[best].TextSignature, nil
}
