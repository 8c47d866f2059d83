package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// authHeaderPattern matches Authorization header values.
var authHeaderPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)

// redactOptions lists what never reaches a log line: account passwords and
// hashes, session tokens and cookies, and upstream credentials.
func redactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("password_confirm"),
		masq.WithFieldName("password_hash"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("PasswordConfirm"),
		masq.WithFieldName("PasswordHash"),

		masq.WithFieldName("token"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("session"),
		masq.WithFieldName("session_key"),
		masq.WithFieldName("SessionKey"),
		masq.WithFieldName("cookie"),

		masq.WithFieldName("authorization"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldPrefix("secret"),

		masq.WithRegex(authHeaderPattern),
	}
}

// replaceAttr returns the masq ReplaceAttr hook shared by every handler.
func replaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(redactOptions(), extra...)...)
}

// redactingHandler runs masq in front of handlers that take no ReplaceAttr
// option, such as the charm console printer.
type redactingHandler struct {
	next    slog.Handler
	replace func(groups []string, a slog.Attr) slog.Attr
	groups  []string
}

func newRedactingHandler(next slog.Handler) *redactingHandler {
	return &redactingHandler{next: next, replace: replaceAttr()}
}

func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replace(h.groups, a)
	}

	return &redactingHandler{next: h.next.WithAttrs(redacted), replace: h.replace, groups: h.groups}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redactingHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
