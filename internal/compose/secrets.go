package compose

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// secretKeys are the compose environment keys Formbricks requires before
// first boot. The official file ships them empty.
var secretKeys = []string{"NEXTAUTH_SECRET", "ENCRYPTION_KEY", "CRON_SECRET"}

// secretBytes yields 64 hex characters per secret.
const secretBytes = 32

// EnsureSecrets fills every empty secret key in the compose file with a
// fresh random value and reports which keys were filled. Keys that already
// carry a value are left alone, so rerunning against a configured file is a
// no-op and never rotates secrets out from under a seeded instance.
func EnsureSecrets(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}

	lines := strings.Split(string(content), "\n")
	var filled []string
	for i, line := range lines {
		for _, key := range secretKeys {
			if strings.TrimSpace(line) != key+":" {
				continue
			}
			value, err := randomHex(secretBytes)
			if err != nil {
				return nil, err
			}
			indent := line[:strings.Index(line, key)]
			lines[i] = indent + key + ": " + value
			filled = append(filled, key)
		}
	}
	if len(filled) == 0 {
		return nil, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return nil, fmt.Errorf("write compose file: %w", err)
	}
	return filled, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
