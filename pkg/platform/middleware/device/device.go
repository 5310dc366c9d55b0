// Package device summarizes the client behind a User-Agent for access logs.
// It never stores the raw header.
package device

import (
	"github.com/mssola/useragent"
)

// Class buckets clients coarsely.
type Class string

const (
	ClassUnknown Class = "unknown"
	ClassBot     Class = "bot"
	ClassMobile  Class = "mobile"
	ClassDesktop Class = "desktop"
)

// Info is what the access log records about a client.
type Info struct {
	Class   Class
	Browser string
	OS      string
}

// Parse classifies a User-Agent header value.
func Parse(userAgent string) Info {
	if userAgent == "" {
		return Info{Class: ClassUnknown}
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	info := Info{Browser: browser, OS: ua.OS()}
	switch {
	case ua.Bot():
		info.Class = ClassBot
	case ua.Mobile():
		info.Class = ClassMobile
	default:
		info.Class = ClassDesktop
	}
	return info
}
