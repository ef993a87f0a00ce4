package remote

import (
	"context"
	"io"
	"net/http"
)

// PreloadImage warms the HTTP cache for an image URL. The body is
// discarded; only transport-level failures are reported.
func (c *Client) PreloadImage(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}
