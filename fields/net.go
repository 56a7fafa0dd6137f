package fields

import (
	"net"
	"net/mail"
	"sort"
	"strings"

	conform "github.com/reifylabs/conform"
)

// EmailAddressField ensures that the value is a string containing a
// parseable email address. Domains in the whitelist bypass the domain
// check (the default whitelist admits "localhost").
type EmailAddressField struct {
	whitelist   map[string]struct{}
	description string
}

// EmailAddress returns a field accepting email addresses.
func EmailAddress() *EmailAddressField {
	return &EmailAddressField{whitelist: map[string]struct{}{"localhost": {}}}
}

// WhitelistDomains replaces the domain whitelist.
func (f *EmailAddressField) WhitelistDomains(domains ...string) *EmailAddressField {
	f.whitelist = make(map[string]struct{}, len(domains))
	for _, d := range domains {
		f.whitelist[d] = struct{}{}
	}
	return f
}

func (f *EmailAddressField) Description(d string) *EmailAddressField {
	f.description = d
	return f
}

func (f *EmailAddressField) Validate(value any) conform.Validation {
	s, ok := asString(value)
	if !ok {
		return singleError("Not a unicode string")
	}
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return singleError("Not a valid email address (missing @ sign)")
	}
	local, domain := s[:at], s[at+1:]
	if local == "" {
		v := singleError("Not a valid email address (invalid local user field)")
		v.Errors[0].Pointer = local
		return v
	}
	if _, whitelisted := f.whitelist[domain]; whitelisted {
		return conform.Validation{}
	}
	if _, err := mail.ParseAddress(s); err != nil {
		v := singleError("Not a valid email address (invalid domain field)")
		v.Errors[0].Pointer = domain
		return v
	}
	return conform.Validation{}
}

func (f *EmailAddressField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("email_address").Set("description", f.description)
	domains := make([]string, 0, len(f.whitelist))
	for d := range f.whitelist {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	if !(len(domains) == 1 && domains[0] == "localhost") {
		in.Set("domain_whitelist", domains)
	}
	return in
}

// IPv4AddressField ensures that the value is a string holding a dotted
// IPv4 address.
type IPv4AddressField struct {
	description string
}

// IPv4Address returns a field accepting IPv4 address strings.
func IPv4Address() *IPv4AddressField { return &IPv4AddressField{} }

func (f *IPv4AddressField) Description(d string) *IPv4AddressField {
	f.description = d
	return f
}

func (f *IPv4AddressField) Validate(value any) conform.Validation {
	s, ok := asString(value)
	if !ok {
		return singleError("Not a unicode string")
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil || !strings.Contains(s, ".") {
		return singleError("Not a valid IPv4 address")
	}
	return conform.Validation{}
}

func (f *IPv4AddressField) Introspect() conform.Introspection {
	return conform.NewIntrospection("ipv4_address").Set("description", f.description)
}

// IPv6AddressField ensures that the value is a string holding an IPv6
// address.
type IPv6AddressField struct {
	description string
}

// IPv6Address returns a field accepting IPv6 address strings.
func IPv6Address() *IPv6AddressField { return &IPv6AddressField{} }

func (f *IPv6AddressField) Description(d string) *IPv6AddressField {
	f.description = d
	return f
}

func (f *IPv6AddressField) Validate(value any) conform.Validation {
	s, ok := asString(value)
	if !ok {
		return singleError("Not a unicode string")
	}
	if !strings.Contains(s, ":") {
		return singleError("Not a valid IPv6 address (no colons)")
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() != nil {
		return singleError("Not a valid IPv6 address")
	}
	return conform.Validation{}
}

func (f *IPv6AddressField) Introspect() conform.Introspection {
	return conform.NewIntrospection("ipv6_address").Set("description", f.description)
}

// IPAddress accepts either address family.
func IPAddress() *AnyField {
	return Any(IPv4Address(), IPv6Address())
}
