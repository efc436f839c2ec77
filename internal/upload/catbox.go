package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
)

const DefaultCatboxURL = "https://catbox.moe/user/api.php"

// Catbox uploads through the catbox.moe API; the response body is the plain
// file URL.
type Catbox struct {
	client  *http.Client
	baseURL string
}

func NewCatbox(client *http.Client, baseURL string) *Catbox {
	if baseURL == "" {
		baseURL = DefaultCatboxURL
	}
	return &Catbox{client: client, baseURL: baseURL}
}

func (c *Catbox) Name() string {
	return "catbox"
}

func (c *Catbox) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("reqtype", "fileupload"); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}
	part, err := writer.CreateFormFile("fileToUpload", filename)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}
	if _, err := part.Write(data); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "catbox request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to read catbox response")
	}

	url := strings.TrimSpace(string(raw))
	if resp.StatusCode >= 300 || !strings.HasPrefix(url, "http") {
		return "", errors.New(errors.ErrCodeUpload, fmt.Sprintf("catbox rejected upload (status %d)", resp.StatusCode))
	}

	return url, nil
}
