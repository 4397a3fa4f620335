package storage

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AvatarSource looks up an externally hosted avatar for an email address.
type AvatarSource interface {
	LookupURL(ctx context.Context, email string) (string, error)
}

// GravatarSource resolves avatars against gravatar.com. The lookup probes for
// an existing image (d=404) so users without a Gravatar get no avatar rather
// than the generated placeholder.
type GravatarSource struct {
	client *http.Client
}

// NewGravatarSource creates a source with a short probe timeout.
func NewGravatarSource() *GravatarSource {
	return &GravatarSource{client: &http.Client{Timeout: 3 * time.Second}}
}

// LookupURL returns the Gravatar image URL for the email, or an error when
// none exists or gravatar.com is unreachable.
func (g *GravatarSource) LookupURL(ctx context.Context, email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := fmt.Sprintf("%x", md5.Sum([]byte(normalized)))
	url := fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=250&d=404", hash)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("no gravatar for %s: status %d", email, resp.StatusCode)
	}
	return url, nil
}
