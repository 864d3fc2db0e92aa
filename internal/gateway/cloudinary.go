package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/attachment"
)

// CloudinaryConfig holds the credentials for Cloudinary's upload API.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStore uploads files to Cloudinary.
type CloudinaryStore struct {
	cfg    CloudinaryConfig
	client *http.Client
	logger *zap.Logger
}

// NewCloudinaryStore creates a Cloudinary client with a bounded timeout.
func NewCloudinaryStore(cfg CloudinaryConfig, logger *zap.Logger) *CloudinaryStore {
	return &CloudinaryStore{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends the file to Cloudinary and returns its public URL and ID.
func (c *CloudinaryStore) Upload(ctx context.Context, fileName, mimeType string, data []byte) (attachment.StoredFile, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return attachment.StoredFile{}, err
	}
	if _, err := part.Write(data); err != nil {
		return attachment.StoredFile{}, err
	}
	_ = writer.WriteField("api_key", c.cfg.APIKey)
	_ = writer.WriteField("folder", c.cfg.Folder)
	if err := writer.Close(); err != nil {
		return attachment.StoredFile{}, err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return attachment.StoredFile{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return attachment.StoredFile{}, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return attachment.StoredFile{}, fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}

	var uploaded cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return attachment.StoredFile{}, fmt.Errorf("failed to decode cloudinary response: %w", err)
	}
	return attachment.StoredFile{
		URL:      uploaded.SecureURL,
		StoreRef: uploaded.PublicID,
	}, nil
}

// Delete removes a previously uploaded file by its public ID.
func (c *CloudinaryStore) Delete(ctx context.Context, storeRef string) error {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/image/upload", c.cfg.CloudName)
	form := url.Values{"public_ids[]": {storeRef}}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}
	return nil
}
