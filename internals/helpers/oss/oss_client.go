package oss

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	aliyun "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"github.com/JPAVictoria/LOA-Tabulation/internals/configs"
)

/* =======================================================================
   Candidate photo store (Aliyun OSS)

   The core never inspects image bytes; it uploads them verbatim and keeps
   only the public URL on the candidate row.
======================================================================= */

const maxUploadSize = int64(5 * 1024 * 1024)

const candidateFolder = "candidates"

type Client struct {
	bucket    *aliyun.Bucket
	publicURL string // e.g. https://<bucket>.<endpoint>
}

var (
	defaultClient *Client
	defaultErr    error
	once          sync.Once
)

// Default returns the process-wide client, built lazily from OSS_* env vars.
func Default() (*Client, error) {
	once.Do(func() {
		defaultClient, defaultErr = NewFromEnv()
	})
	return defaultClient, defaultErr
}

func NewFromEnv() (*Client, error) {
	endpoint := configs.GetEnv("OSS_ENDPOINT")
	keyID := configs.GetEnv("OSS_ACCESS_KEY_ID")
	keySecret := configs.GetEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := configs.GetEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET must be set")
	}

	cli, err := aliyun.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: client: %w", err)
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: bucket: %w", err)
	}

	publicURL := configs.GetEnv("OSS_PUBLIC_URL")
	if publicURL == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		publicURL = fmt.Sprintf("https://%s.%s", bucketName, host)
	}

	return &Client{bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// UploadCandidatePhoto stores the raw multipart bytes under candidates/
// with a random name and returns the public URL.
func (c *Client) UploadCandidatePhoto(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("oss: file too large (max %d bytes)", maxUploadSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("oss: open upload: %w", err)
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(f); err != nil {
		return "", fmt.Errorf("oss: read upload: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		head := buf.Bytes()
		if len(head) > 512 {
			head = head[:512]
		}
		contentType = http.DetectContentType(head)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	key := fmt.Sprintf("%s/%s%s", candidateFolder, uuid.NewString(), ext)

	err = c.bucket.PutObject(key, bytes.NewReader(buf.Bytes()),
		aliyun.ContentType(contentType),
		aliyun.ObjectACL(aliyun.ACLPublicRead),
	)
	if err != nil {
		return "", fmt.Errorf("oss: put %s: %w", key, err)
	}

	return c.publicURL + "/" + key, nil
}

// RemoveByURL deletes the object a public URL points at. Unknown URLs are
// ignored so a stale record never blocks a candidate update.
func (c *Client) RemoveByURL(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return nil
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" || path.Dir(key) != candidateFolder {
		return nil
	}
	return c.bucket.DeleteObject(key)
}
