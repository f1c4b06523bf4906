package util

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command runs name with args and returns its trimmed standard output.
func Command(ctx context.Context, name string, args ...string) (string, error) {
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w (%s)", name, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimRight(out.String(), " \t\r\n"), nil
}
