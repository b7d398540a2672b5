package mediastore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nutrition-service/internal/config"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

func newTestUploader(serverURL string) *CloudinaryClient {
	c := NewCloudinaryClient(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key-123",
		APISecret: "secret-456",
	})
	c.baseURL = serverURL
	return c
}

func TestCloudinaryClient_Upload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "meals", r.FormValue("folder"))
		assert.Equal(t, "key-123", r.FormValue("api_key"))
		assert.NotEmpty(t, r.FormValue("timestamp"))

		// The signature must cover folder and timestamp, but not the api key.
		wantSig := signParams(map[string]string{
			"folder":    r.FormValue("folder"),
			"timestamp": r.FormValue("timestamp"),
		}, "secret-456")
		assert.Equal(t, wantSig, r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "meal.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/meals/abc.jpg"}`))
	}))
	defer server.Close()

	client := newTestUploader(server.URL)
	url, err := client.Upload(context.Background(), []byte("jpeg-bytes"), "meals")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/meals/abc.jpg", url)
}

func TestCloudinaryClient_Upload_Failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"Invalid Signature"}}`, http.StatusUnauthorized)
			},
		},
		{
			name: "missing secure_url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"public_id":"abc"}`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway error</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestUploader(server.URL)
			_, err := client.Upload(context.Background(), []byte("jpeg-bytes"), "meals")
			require.Error(t, err)

			var de *apperrors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "UPSTREAM_FAILURE", de.Code)
		})
	}
}

func TestCloudinaryClient_Upload_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"secure_url":"https://example.com/late.jpg"}`))
	}))
	defer server.Close()

	client := newTestUploader(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Upload(ctx, []byte("jpeg-bytes"), "meals")
	require.Error(t, err)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "UPSTREAM_TIMEOUT", de.Code)
}

func TestSignParams(t *testing.T) {
	t.Parallel()

	params := map[string]string{
		"timestamp": "1700000000",
		"folder":    "meals",
	}
	sum := sha1.Sum([]byte("folder=meals&timestamp=1700000000" + "secret"))

	assert.Equal(t, hex.EncodeToString(sum[:]), signParams(params, "secret"))
}
