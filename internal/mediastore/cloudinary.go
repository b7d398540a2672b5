package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/nutrition-service/internal/config"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// Uploader stores an image and returns a publicly-resolvable URL.
type Uploader interface {
	Upload(ctx context.Context, jpeg []byte, folder string) (string, error)
}

// CloudinaryClient uploads images through the Cloudinary REST upload endpoint
// using signed requests. Failures propagate to the caller; no retries.
type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	http      *http.Client
	baseURL   string
}

// NewCloudinaryClient builds the client.
func NewCloudinaryClient(cfg config.CloudinaryConfig) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   "https://api.cloudinary.com/v1_1",
	}
}

// Upload posts the image to the upload endpoint and returns the secure URL.
func (c *CloudinaryClient) Upload(ctx context.Context, jpeg []byte, folder string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, val := range params {
		if err := writer.WriteField(key, val); err != nil {
			return "", apperrors.NewInternalError(err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if err := writer.WriteField("signature", signParams(params, c.apiSecret)); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	filePart, err := writer.CreateFormFile("file", "meal.jpg")
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if _, err := filePart.Write(jpeg); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if err := writer.Close(); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewUpstreamTimeout("image host", err)
		}
		return "", apperrors.NewUpstreamFailure("image host", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamFailure("image host", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewUpstreamFailure("image host", fmt.Errorf("status %d: %s", resp.StatusCode, respBody))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", apperrors.NewUpstreamFailure("image host", err)
	}
	if result.SecureURL == "" {
		return "", apperrors.NewUpstreamFailure("image host", errors.New("response missing secure_url"))
	}
	return result.SecureURL, nil
}

// signParams builds the Cloudinary request signature: parameters sorted by
// name, joined as a query string, with the API secret appended, SHA-1 hashed.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
