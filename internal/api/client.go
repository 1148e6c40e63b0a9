package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/title-page-form/internal/logging/events"
	"github.com/google/uuid"
)

const (
	generatePath = "/generate"
	combinePath  = "/combine"

	requestIDHeader = "X-Request-ID"
)

// Piece is the generate request body. Field order is the wire order.
type Piece struct {
	Title          string   `json:"title"`
	Composers      []string `json:"composers"`
	Font           string   `json:"font"`
	Part           string   `json:"part"`
	ExtraInfo      []string `json:"extra_info"`
	PartAdditional string   `json:"part_additional"`
}

// Artifact is a generated title page. URL is resolved against the client's
// base URL; Filename is the server-side key later sent back to /combine.
type Artifact struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Combined is the result of merging a title page with an uploaded score.
type Combined struct {
	URL string `json:"url"`
}

// Upload is a user supplied file held in memory until it is combined.
type Upload struct {
	Name string
	Data []byte
}

// StatusError reports a non-2xx response. Error returns the server supplied
// detail when there is one.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	text := http.StatusText(e.Status)
	if text == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("%d %s", e.Status, text)
}

// Client talks to the title page backend.
type Client struct {
	base  *url.URL
	http  *http.Client
	newID func() string
}

// New builds a client for baseURL whose requests give up after timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient builds a client around an existing *http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("base url required")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: base, http: hc, newID: uuid.NewString}, nil
}

// Resolve turns a server supplied reference (for example /media/x.pdf) into
// an absolute URL. Unparseable references are returned unchanged.
func (c *Client) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(parsed).String()
}

// Completions fetches the candidate list served at endpoint.
func (c *Client) Completions(ctx context.Context, endpoint string) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completions %s: unexpected status %s", endpoint, resp.Status)
	}
	var items []string
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode completions %s: %w", endpoint, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Generate posts piece to /generate and returns the resulting artifact.
func (c *Client) Generate(ctx context.Context, piece Piece) (Artifact, error) {
	if piece.Composers == nil {
		piece.Composers = []string{}
	}
	if piece.ExtraInfo == nil {
		piece.ExtraInfo = []string{}
	}
	body, err := json.Marshal(piece)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode piece: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, generatePath, bytes.NewReader(body))
	if err != nil {
		return Artifact{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out Artifact
	if err := c.exchange(req, &out); err != nil {
		return Artifact{}, err
	}
	out.URL = c.Resolve(out.URL)
	return out, nil
}

// Combine uploads the score and asks the backend to merge it behind the
// title page stored under titlePageFilename.
func (c *Client) Combine(ctx context.Context, titlePageFilename string, upload Upload) (Combined, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title_page_filename", titlePageFilename); err != nil {
		return Combined{}, fmt.Errorf("write multipart field: %w", err)
	}
	name := upload.Name
	if name == "" {
		name = "upload"
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return Combined{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return Combined{}, fmt.Errorf("write multipart file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Combined{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, combinePath, &buf)
	if err != nil {
		return Combined{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out Combined
	if err := c.exchange(req, &out); err != nil {
		return Combined{}, err
	}
	out.URL = c.Resolve(out.URL)
	return out, nil
}

// endpoint places a request path under the base URL, keeping any path prefix
// the base carries (http://host/api + /generate = http://host/api/generate).
// Absolute URLs are used as they are.
func (c *Client) endpoint(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	target := c.base.JoinPath(parsed.Path)
	target.RawQuery = parsed.RawQuery
	return target.String()
}

func (c *Client) newRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	target := c.endpoint(ref)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, c.newID())
	return req, nil
}

// do sends req. Transport errors are returned as-is so their text reaches
// the user unchanged.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(requestIDHeader)
	events.HTTP.Request(id, req.Method, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		events.HTTP.Failure(id, err, time.Since(start))
		return nil, err
	}
	events.HTTP.Response(id, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (c *Client) exchange(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Detail: detailFrom(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// detailFrom extracts the "detail" member of an error body. Non-string
// details (validation error arrays) are returned as compact JSON.
func detailFrom(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body.Detail); err != nil {
		return string(body.Detail)
	}
	if compact.String() == "null" {
		return ""
	}
	return compact.String()
}
