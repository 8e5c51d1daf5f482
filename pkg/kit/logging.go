package kit

import "go.uber.org/zap"

// NewLogger builds the production logger every entry point shares, with
// the service name stamped onto each record.
func NewLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
