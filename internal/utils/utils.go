package utils

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ToSnakeCase converts a CloudFormation style name into a Terraform identifier:
// "LoadBalancerHealthCheckInterval" -> "load_balancer_health_check_interval", "DNSRecord" -> "dns_record".
func ToSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder

	for i, r := range runes {
		if r == '-' || r == ' ' || r == '.' {
			b.WriteRune('_')
			continue
		}
		if unicode.IsUpper(r) {
			startsWord := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])))
			if startsWord {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// WriteOutputFile writes data to dir/name, creating dir if needed.
func WriteOutputFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info(fmt.Sprintf("✅ wrote %s", path))
	return path, nil
}
