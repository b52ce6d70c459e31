package observability

import (
	"log/slog"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// LoggingHooks writes one record per resolution: Debug on success, Warn
// when nothing matched and Error for malformed expressions.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	attrs := func(e *domain.ResolveEvent) []any {
		args := []any{
			"view", e.ViewID,
			"source", e.SourceID,
			"expression", e.Expression,
			"matches", e.Matches,
			"duration", e.Duration,
		}
		if e.Err != nil {
			args = append(args, "err", e.Err)
		}
		return args
	}
	return domain.LifecycleHooks{
		OnResolve: func(e *domain.ResolveEvent) {
			logger.Debug("expression_resolved", attrs(e)...)
		},
		OnNotFound: func(e *domain.ResolveEvent) {
			logger.Warn("expression_not_found", attrs(e)...)
		},
		OnInvalid: func(e *domain.ResolveEvent) {
			logger.Error("expression_invalid", attrs(e)...)
		},
	}
}

// Combine merges hooks; each event is passed to every non-nil hook in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var onResolve, onNotFound, onInvalid []func(*domain.ResolveEvent)
	for _, h := range hooks {
		if h.OnResolve != nil {
			onResolve = append(onResolve, h.OnResolve)
		}
		if h.OnNotFound != nil {
			onNotFound = append(onNotFound, h.OnNotFound)
		}
		if h.OnInvalid != nil {
			onInvalid = append(onInvalid, h.OnInvalid)
		}
	}
	return domain.LifecycleHooks{
		OnResolve:  fanOut(onResolve),
		OnNotFound: fanOut(onNotFound),
		OnInvalid:  fanOut(onInvalid),
	}
}

func fanOut(fns []func(*domain.ResolveEvent)) func(*domain.ResolveEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(e *domain.ResolveEvent) {
		for _, fn := range fns {
			fn(e)
		}
	}
}
