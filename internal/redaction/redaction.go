// Package redaction strips credentials and secrets from records before they
// are printed by the CLI or returned over MCP.
package redaction

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/go-ports/gomate/internal/models"
)

// IgnoreFile is the per-home file of extra patterns read by LoadIgnore.
const IgnoreFile = ".gomateignore"

// sensitivePatterns are compiled once at package init.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]+)?`), // JWT tokens
	regexp.MustCompile(`(?i)([?&](?:token|sig|signature|x-amz-signature|key)=)[^&#\s]+`),
	regexp.MustCompile(`(?i)password\s*[:=]\s*["']?\S+`),
	regexp.MustCompile(`(?i)secret\s*[:=]\s*["']?\S+`),
	regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?\S+`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`), // AWS access key IDs
}

const replacement = "[REDACTED]"

// Redact replaces the built-in sensitive patterns and then extraPatterns.
// Query-string credentials keep their parameter name.
func Redact(text string, extraPatterns []*regexp.Regexp) string {
	for i, re := range sensitivePatterns {
		if i == 1 {
			text = re.ReplaceAllString(text, "${1}"+replacement)
			continue
		}
		text = re.ReplaceAllString(text, replacement)
	}
	for _, re := range extraPatterns {
		text = re.ReplaceAllString(text, replacement)
	}
	return text
}

// User returns u without its password and with secrets removed from the
// profile image URI.
func User(u models.User, extraPatterns []*regexp.Regexp) models.User {
	u.Password = ""
	if u.ProfileImage != "" {
		u.ProfileImage = Redact(u.ProfileImage, extraPatterns)
	}
	return u
}

// Users applies User to every element of us.
func Users(us []models.User, extraPatterns []*regexp.Regexp) []models.User {
	out := make([]models.User, len(us))
	for i, u := range us {
		out[i] = User(u, extraPatterns)
	}
	return out
}

// LoadIgnore reads an ignore file and compiles each non-blank, non-comment
// line as a regular expression.
// Returns nil (no error) if the file does not exist.
func LoadIgnore(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, scanner.Err()
}
