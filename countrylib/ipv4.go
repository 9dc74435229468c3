package countrylib

import (
	"net"
	"regexp"
	"strconv"
	"strings"
)

// IPv4Pattern is a regular expression for strict dotted-quad IPv4
// addresses: 4 groups of 0-255.
const IPv4Pattern = `^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`

var ipv4Regexp = regexp.MustCompile(IPv4Pattern)

// ParseIPv4 parses a dotted-quad IPv4 address. Groups may have leading
// zeroes, so 010.0.0.1 is 10.0.0.1.
func ParseIPv4(value string) (net.IP, bool) {
	if !ipv4Regexp.MatchString(value) {
		return nil, false
	}

	var octets [net.IPv4len]byte

	for i, v := range strings.Split(value, ".") {
		octet, _ := strconv.Atoi(v)
		octets[i] = byte(octet)
	}

	return net.IPv4(octets[0], octets[1], octets[2], octets[3]).To4(), true
}
