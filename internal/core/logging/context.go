package logging

import "context"

type contextKey string

const scanRootKey contextKey = "scan_root"

// WithScanRoot adds the scan root directory to the context.
func WithScanRoot(ctx context.Context, root string) context.Context {
	return context.WithValue(ctx, scanRootKey, root)
}

// GetScanRoot retrieves the scan root from the context.
// Returns empty string if not present.
func GetScanRoot(ctx context.Context) string {
	if root, ok := ctx.Value(scanRootKey).(string); ok {
		return root
	}
	return ""
}
