// /internal/mind/logging.go
package mind

import "github.com/rs/zerolog"

const (
	promptPreviewLen = 500
	replyPreviewLen  = 200
)

func preview(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// logGeneration records one backend call at debug level with truncated
// previews so the log stays readable.
func logGeneration(log zerolog.Logger, stage string, payload, reply string, err error) {
	ev := log.Debug().Str("stage", stage).
		Str("payload", preview(payload, promptPreviewLen))
	if err != nil {
		ev = ev.Err(err)
	} else {
		ev = ev.Str("reply", preview(reply, replyPreviewLen))
	}
	ev.Msg("generation call")
}
