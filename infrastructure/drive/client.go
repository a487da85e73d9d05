// Package drive uploads finished reels to Google Drive.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"

	"flashcut/domain/reel"
)

// DriveService defines the Google Drive API operations the uploader needs
// This allows mocking the API in tests
type DriveService interface {
	CreateFile(ctx context.Context, name, folderID, mimeType string, content io.Reader) (*drive.File, error)
	ShareWithAnyone(ctx context.Context, fileID string) error
}

// GoogleDriveService is the production implementation using the Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// CreateFile uploads content as a new file, optionally under a folder
func (s *GoogleDriveService) CreateFile(ctx context.Context, name, folderID, mimeType string, content io.Reader) (*drive.File, error) {
	meta := &drive.File{Name: name, MimeType: mimeType}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}
	return s.service.Files.Create(meta).
		Media(content).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
}

// ShareWithAnyone grants anyone-with-the-link read access
func (s *GoogleDriveService) ShareWithAnyone(ctx context.Context, fileID string) error {
	_, err := s.service.Permissions.Create(fileID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	return err
}

// Client implements reel.Uploader using the Google Drive API.
type Client struct {
	driveService DriveService
	folderID     string
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) ClientOption {
	return func(c *Client) {
		c.driveService = svc
	}
}

// WithFolderID uploads into the given Drive folder instead of the root
func WithFolderID(folderID string) ClientOption {
	return func(c *Client) {
		c.folderID = folderID
	}
}

// NewClient creates a Google Drive client using OAuth 2.0 user credentials.
// If no custom drive service is provided, the OAuth flow runs on first use
// and the token is cached at tokenPath.
func NewClient(ctx context.Context, credentialsPath, tokenPath string, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.driveService == nil {
		svc, err := newOAuthDriveService(ctx, credentialsPath, tokenPath)
		if err != nil {
			return nil, err
		}
		c.driveService = svc
	}

	return c, nil
}

// UploadAndShare implements reel.Uploader
func (c *Client) UploadAndShare(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open reel: %w", err)
	}
	defer f.Close()

	created, err := c.driveService.CreateFile(ctx, filepath.Base(path), c.folderID, "video/mp4", f)
	if err != nil {
		return "", fmt.Errorf("failed to upload reel: %w", err)
	}

	if err := c.driveService.ShareWithAnyone(ctx, created.Id); err != nil {
		return "", fmt.Errorf("failed to share reel: %w", err)
	}

	return created.WebViewLink, nil
}

// Ensure Client implements reel.Uploader
var _ reel.Uploader = (*Client)(nil)
