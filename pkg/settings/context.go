package settings

import "context"

type runKey struct{}

// IntoContext attaches the settings of the current run to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runKey{}, s)
}

// FromContext returns the run settings stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runKey{}).(*Run)
	return s, ok && s != nil
}

// CaseIDFrom returns the case the run targets, or "" when ctx carries no
// settings.
func CaseIDFrom(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.CaseID
	}
	return ""
}
