package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Ticket is the issuer's response to an upload request: a time-limited
// direct-upload URL and the storage key the object will live under.
type Ticket struct {
	PresignedURL string `json:"presignedUrl"`
	Key          string `json:"key"`
}

// Registration describes a completed upload to persist as a media record.
// Exactly one of ContentID/PersonID should be set.
type Registration struct {
	ContentID  string
	PersonID   string
	FileURL    string
	Type       string
	Category   string
	Title      string
	FileSize   int64
	StorageKey string
}

// MediaRecord mirrors the server's persisted media row.
type MediaRecord struct {
	ID         string `json:"id"`
	FileURL    string `json:"fileUrl"`
	Type       string `json:"type"`
	Category   string `json:"mediaCategory"`
	Title      string `json:"title"`
	FileSize   int64  `json:"fileSize"`
	StorageKey string `json:"storageKey"`
}

// Client talks to the catalog API and to presigned storage URLs.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
}

// NewClient creates an API client. token may be empty for unauthenticated
// endpoints.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: token,
		http:      &http.Client{Timeout: 10 * time.Minute},
	}
}

// CreateTicket requests a presigned upload URL for one file.
func (c *Client) CreateTicket(ctx context.Context, fileName, contentType string, size int64) (*Ticket, error) {
	body, err := json.Marshal(map[string]interface{}{
		"fileName":    fileName,
		"contentType": contentType,
		"size":        size,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/file", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request upload ticket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(readErrorMessage(resp.Body))
	}

	ticket := &Ticket{}
	if err := json.NewDecoder(resp.Body).Decode(ticket); err != nil {
		return nil, fmt.Errorf("decode upload ticket: %w", err)
	}
	return ticket, nil
}

// DeleteFile removes the object at key from the blob store.
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/file/"+url.PathEscape(key), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(readErrorMessage(resp.Body))
	}
	return nil
}

// RegisterMedia persists a completed upload as a media record. This is an
// explicit step after the transfer: the server never registers uploads on
// its own.
func (c *Client) RegisterMedia(ctx context.Context, reg Registration) ([]MediaRecord, error) {
	form := url.Values{}
	if reg.ContentID != "" {
		form.Set("contentId", reg.ContentID)
	}
	if reg.PersonID != "" {
		form.Set("personId", reg.PersonID)
	}
	form.Set("fileUrl", reg.FileURL)
	form.Set("type", reg.Type)
	form.Set("mediaCategory", reg.Category)
	form.Set("title", reg.Title)
	form.Set("fileSize", strconv.FormatInt(reg.FileSize, 10))
	form.Set("storageKey", reg.StorageKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/media", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("register media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, errors.New(readErrorMessage(resp.Body))
	}

	var records []MediaRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode media records: %w", err)
	}
	return records, nil
}

// Put transfers data directly to a presigned URL, reporting progress as the
// body is consumed. onProgress receives round(sent/total*100); it may be nil.
// A non-2xx response yields an error carrying the HTTP status.
func (c *Client) Put(ctx context.Context, presignedURL, contentType string, data []byte, onProgress func(pct int)) error {
	body := &progressReader{
		r:          bytes.NewReader(data),
		total:      int64(len(data)),
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.New("Upload failed due to network error")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed: %s", resp.Status)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// PublicURL derives the object's public URL from its presigned URL by
// dropping the signature query.
func PublicURL(presignedURL string) string {
	u, err := url.Parse(presignedURL)
	if err != nil {
		return presignedURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// readErrorMessage drains an error response body through the shared
// extraction.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return unknownErrorMessage
	}
	return ExtractErrorMessage(body)
}

// progressReader counts bytes as the HTTP client consumes the request body.
type progressReader struct {
	r          *bytes.Reader
	total      int64
	sent       int64
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(int(math.Round(float64(p.sent) / float64(p.total) * 100)))
		}
	}
	return n, err
}
