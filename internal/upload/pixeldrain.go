package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
)

const DefaultPixeldrainURL = "https://pixeldrain.com"

// Pixeldrain uploads through the pixeldrain.com file API.
type Pixeldrain struct {
	client  *http.Client
	baseURL string
}

func NewPixeldrain(client *http.Client, baseURL string) *Pixeldrain {
	if baseURL == "" {
		baseURL = DefaultPixeldrainURL
	}
	return &Pixeldrain{client: client, baseURL: baseURL}
}

func (p *Pixeldrain) Name() string {
	return "pixeldrain"
}

func (p *Pixeldrain) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}
	if _, err := part.Write(data); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/file", &body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "pixeldrain request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "failed to read pixeldrain response")
	}

	var parsed struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUpload, "invalid pixeldrain response")
	}
	if resp.StatusCode >= 300 || !parsed.Success || parsed.ID == "" {
		return "", errors.New(errors.ErrCodeUpload, fmt.Sprintf("pixeldrain rejected upload (status %d)", resp.StatusCode))
	}

	return p.baseURL + "/u/" + parsed.ID, nil
}
