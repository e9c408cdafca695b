package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development. Instead of going
// through an email service it writes each message as a JSON file to a
// directory, so verification codes can be read off disk.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves emails to dir.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Send writes the message to the configured directory.
func (d *DevSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	name := fmt.Sprintf("%s_%s.json",
		time.Now().Format("20060102T150405.000"),
		unsafeFilenameChars.ReplaceAllString(strings.ToLower(msg.To), "_"),
	)

	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	return nil
}

var _ Sender = (*DevSender)(nil)
