// Package media pushes customer photos to the external image host and hands
// back the hosted URL. Upload failures are non-fatal for update flows; the
// caller keeps the prior image.
package media

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Uploader struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
}

func NewUploader(uploadURL, apiKey string) *Uploader {
	return &Uploader{
		uploadURL:  uploadURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *Uploader) Configured() bool {
	return u.uploadURL != ""
}

type uploadResponse struct {
	URL  string `json:"url"`
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Error string `json:"error"`
}

// Upload posts the file as multipart form data and returns the stable URL
// the host assigned.
func (u *Uploader) Upload(filename string, file io.Reader) (string, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, u.uploadURL, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("media host returned HTTP %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("media host returned malformed response: %w", err)
	}
	if parsed.URL != "" {
		return parsed.URL, nil
	}
	if parsed.Data.URL != "" {
		return parsed.Data.URL, nil
	}
	return "", fmt.Errorf("media host response missing url")
}
