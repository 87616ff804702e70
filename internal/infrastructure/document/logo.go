package document

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const maxLogoBytes = 2 << 20

// Logo is a decoded-and-verified header image.
type Logo struct {
	Data []byte
	// Type is the fpdf image type: "PNG" or "JPG".
	Type string
}

// LogoLoader resolves the header logo: local file first, then remote URL.
// A nil result means the renderer prints the text wordmark.
type LogoLoader struct {
	Path       string
	URL        string
	HTTPClient *http.Client
	log        logrus.FieldLogger
}

func (l *LogoLoader) Load(ctx context.Context) *Logo {
	if l == nil {
		return nil
	}
	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		if err == nil {
			if logo := verifyLogo(data); logo != nil {
				return logo
			}
		}
		l.warn("local logo unusable", l.Path, err)
	}
	if l.URL != "" {
		data, err := l.fetch(ctx)
		if err == nil {
			if logo := verifyLogo(data); logo != nil {
				return logo
			}
		}
		l.warn("remote logo unusable", l.URL, err)
	}
	return nil
}

func (l *LogoLoader) fetch(ctx context.Context) ([]byte, error) {
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &http.ProtocolError{ErrorString: "unexpected status " + resp.Status}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
}

func (l *LogoLoader) warn(msg, source string, err error) {
	if l.log == nil {
		return
	}
	entry := l.log.WithField("source", source)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

func verifyLogo(data []byte) *Logo {
	var typ string
	switch http.DetectContentType(data) {
	case "image/png":
		typ = "PNG"
	case "image/jpeg":
		typ = "JPG"
	default:
		return nil
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil
	}
	return &Logo{Data: data, Type: typ}
}
