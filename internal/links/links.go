// Package links builds the outbound contact links used in place of a checkout.
package links

import (
	"fmt"
	"strings"
)

const (
	whatsAppBase  = "https://wa.me/"
	instagramBase = "https://instagram.com/"
)

// ProductMessage is the prefilled WhatsApp text for a product enquiry.
func ProductMessage(name, slug string) string {
	return fmt.Sprintf("Hi! I'm interested in the %s (slug: %s).", name, slug)
}

// WhatsApp links to a chat with number.
func WhatsApp(number string) string {
	return whatsAppBase + strings.TrimSpace(number)
}

// WhatsAppProduct links to a chat with number, prefilled with the product enquiry.
func WhatsAppProduct(number, name, slug string) string {
	return WhatsApp(number) + "?text=" + EncodeURIComponent(ProductMessage(name, slug))
}

// Instagram links to the profile for handle. A leading @ is dropped.
func Instagram(handle string) string {
	return instagramBase + strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// EncodeURIComponent percent-encodes s the way browsers do for URI components:
// letters, digits and -_.!~*'() pass through, everything else is UTF-8 percent-encoded.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
