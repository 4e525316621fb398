package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BlobClient talks to the blob storage gateway over HTTP.
type BlobClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBlobClient(baseURL string, timeout time.Duration) *BlobClient {
	return &BlobClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BlobClient) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/blobs/%s", c.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("blob store returned status %d", resp.StatusCode)
	}
	return c.PublicURL(key), nil
}

func (c *BlobClient) Remove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	body, err := json.Marshal(map[string][]string{"keys": keys})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/blobs/delete", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// A blob already gone is not a failure for cleanup purposes.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("blob store returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *BlobClient) PublicURL(key string) string {
	return fmt.Sprintf("%s/blobs/%s", c.baseURL, key)
}
