package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// HeaderTraceparent は W3C Trace Context のヘッダー名
const HeaderTraceparent = "traceparent"

// TraceContext は受け取った traceparent をリモートのスパンコンテキストとしてリクエストに載せる
// 形式が不正なヘッダーは無視する
func TraceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if sc, ok := parseTraceparent(req.Header.Get(HeaderTraceparent)); ok {
				ctx := trace.ContextWithRemoteSpanContext(req.Context(), sc)
				c.SetRequest(req.WithContext(ctx))
			}
			return next(c)
		}
	}
}

// parseTraceparent は "version-traceid-parentid-flags" を解析する
// version 00 は4要素ちょうど、それ以降のバージョンは末尾の拡張を許容する
func parseTraceparent(h string) (trace.SpanContext, bool) {
	parts := strings.Split(strings.TrimSpace(h), "-")
	if len(parts) < 4 {
		return trace.SpanContext{}, false
	}
	version := parts[0]
	if len(version) != 2 || version == "ff" || !isLowerHex(version) {
		return trace.SpanContext{}, false
	}
	if version == "00" && len(parts) != 4 {
		return trace.SpanContext{}, false
	}

	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return trace.SpanContext{}, false
	}
	if len(parts[3]) != 2 || !isLowerHex(parts[3]) {
		return trace.SpanContext{}, false
	}
	flags, err := strconv.ParseUint(parts[3], 16, 8)
	if err != nil {
		return trace.SpanContext{}, false
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.TraceFlags(flags) & trace.FlagsSampled,
		Remote:     true,
	})
	return sc, sc.IsValid()
}

func isLowerHex(s string) bool {
	for _, r := range s {
		if !('0' <= r && r <= '9') && !('a' <= r && r <= 'f') {
			return false
		}
	}
	return true
}
