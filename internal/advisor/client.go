package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the Generative Language API. One attempt per invocation; the
// caller decides what a failure means.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Reply struct {
	Text  string
	Links []GroundingLink
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []map[string]struct {
				URI   string `json:"uri"`
				Title string `json:"title"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (Reply, error) {
	if c.apiKey == "" {
		return Reply{}, fmt.Errorf("generative api key not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return Reply{}, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Reply{}, fmt.Errorf("generative api returned %d: %s", resp.StatusCode, snippet)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Reply{}, err
	}
	if len(out.Candidates) == 0 {
		return Reply{}, fmt.Errorf("generative api returned no candidates")
	}

	reply := Reply{}
	for _, p := range out.Candidates[0].Content.Parts {
		reply.Text += p.Text
	}
	for _, chunk := range out.Candidates[0].GroundingMetadata.GroundingChunks {
		for _, src := range chunk {
			if src.URI == "" {
				continue
			}
			title := src.Title
			if title == "" {
				title = "Maps Link"
			}
			reply.Links = append(reply.Links, GroundingLink{Title: title, URI: src.URI})
		}
	}
	return reply, nil
}
