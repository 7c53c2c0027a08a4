package text

import (
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"

	"truthlens/internal/domain/models"
)

// ExtractPlainText converts html and raw e-mail content to plain text. Other
// content types are returned unchanged.
func ExtractPlainText(content string, contentType models.ContentType) (string, error) {
	switch contentType {
	case models.ContentTypeHTML:
		return htmlToText(content)
	case models.ContentTypeEmail:
		return emailToText(content)
	default:
		return content, nil
	}
}

func htmlToText(content string) (string, error) {
	plain, err := html2text.FromString(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return plain, nil
}

func emailToText(content string) (string, error) {
	env, err := enmime.ReadEnvelope(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse email: %w", err)
	}

	body := env.Text
	if strings.TrimSpace(body) == "" && env.HTML != "" {
		if body, err = htmlToText(env.HTML); err != nil {
			return "", err
		}
	}

	var parts []string
	if subject := env.GetHeader("Subject"); subject != "" {
		parts = append(parts, subject)
	}
	if body = strings.TrimSpace(body); body != "" {
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n"), nil
}
