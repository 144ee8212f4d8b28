package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the scan root from context and adds it to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if root := GetScanRoot(ctx); root != "" {
		e.Str("scan_root", root)
	}
}
