package leave

import "strings"

// Origin identifies the client surface that issued an action.
type Origin string

const (
	OriginApp Origin = "app"
	OriginWeb Origin = "web"
)

// ParseOrigin maps the X-Request-Origin header value. Anything that is not
// app or mobile is treated as web.
func ParseOrigin(header string) Origin {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "app", "mobile":
		return OriginApp
	}
	return OriginWeb
}

func (o Origin) Tag() string {
	if o == OriginApp {
		return "[App]"
	}
	return "[Web]"
}

// DecorateSenderName appends the origin tag unless name already ends with one.
func DecorateSenderName(name string, o Origin) string {
	trimmed := strings.TrimSpace(name)
	if strings.HasSuffix(trimmed, OriginApp.Tag()) || strings.HasSuffix(trimmed, OriginWeb.Tag()) {
		return trimmed
	}
	if trimmed == "" {
		return o.Tag()
	}
	return trimmed + " " + o.Tag()
}
