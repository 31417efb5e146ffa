package cli

import (
	"fmt"
	"os"
	"strings"

	"segysak/pkg/segy"
)

// readText returns the contents of path, or the default textual header when
// path is "default".
func readText(path string) (string, error) {
	if path == "default" {
		return segy.CreateDefaultTexthead(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text header source: %w", err)
	}
	return string(data), nil
}

// parseFields resolves a comma separated list of field names or byte
// locations.
func parseFields(spec string) ([]segy.TraceField, error) {
	if spec == "" {
		return segy.TraceFields(), nil
	}
	var out []segy.TraceField
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if f, ok := segy.TraceFieldByName(name); ok {
			out = append(out, f)
			continue
		}
		var b int
		if _, err := fmt.Sscanf(name, "%d", &b); err == nil && segy.TraceField(b).Valid() {
			out = append(out, segy.TraceField(b))
			continue
		}
		return nil, fmt.Errorf("unknown trace header field %q", name)
	}
	return out, nil
}

