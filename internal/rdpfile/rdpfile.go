// Package rdpfile renders the .rdp documents handed to the platform RDP
// client.
package rdpfile

import (
	"fmt"
	"strings"
)

// Params are the per-connection substitutions.
type Params struct {
	Hostname string
	Username string // bare user, no domain
	Domain   string
}

// directives in output order. %[1]s, %[2]s and %[3]s stand for hostname,
// username and domain.
var directives = []string{
	"screen mode id:i:2",
	"desktopwidth:i:1920",
	"desktopheight:i:1080",
	"session bpp:i:32",
	"full address:s:%[1]s",
	"compression:i:1",
	"keyboardhook:i:2",
	"audiocapturemode:i:1",
	"videoplaybackmode:i:1",
	"connection type:i:2",
	"networkautodetect:i:1",
	"bandwidthautodetect:i:1",
	"enableworkspacereconnect:i:1",
	"disable wallpaper:i:0",
	"allow desktop composition:i:0",
	"allow font smoothing:i:0",
	"disable full window drag:i:1",
	"disable menu anims:i:1",
	"disable themes:i:0",
	"disable cursor setting:i:0",
	"bitmapcachepersistenable:i:1",
	"audiomode:i:0",
	"redirectprinters:i:1",
	"redirectcomports:i:0",
	"redirectsmartcards:i:1",
	"redirectclipboard:i:1",
	"redirectposdevices:i:0",
	"autoreconnection enabled:i:1",
	"authentication level:i:0",
	"prompt for credentials:i:0",
	"negotiate security layer:i:1",
	"remoteapplicationmode:i:0",
	"alternate shell:s:",
	"shell working directory:s:",
	"gatewayhostname:s:",
	"gatewayusagemethod:i:4",
	"gatewaycredentialssource:i:4",
	"gatewayprofileusagemethod:i:0",
	"promptcredentialonce:i:1",
	"use redirection server name:i:0",
	"rdgiskdcproxy:i:0",
	"kdcproxyname:s:",
	"username:s:%[2]s",
	"domain:s:%[3]s",
	"enablecredsspsupport:i:1",
	"public mode:i:0",
	"cert ignore:i:1",
	"prompt for credentials on client:i:0",
	"disableconnectionsharing:i:0",
}

var template = strings.Join(directives, "\r\n") + "\r\n"

// Render produces the CRLF-terminated document for p. Output depends only on
// p.
func Render(p Params) []byte {
	return []byte(fmt.Sprintf(template, p.Hostname, p.Username, p.Domain))
}

// FileName returns the .rdp file name for hostname.
func FileName(hostname string) string {
	return hostname + ".rdp"
}

// CheckHostname reports why hostname cannot be used as a file name, or "".
func CheckHostname(hostname string) string {
	switch {
	case strings.TrimSpace(hostname) == "":
		return "hostname is empty"
	case strings.ContainsAny(hostname, `/\:*?"<>|`):
		return "hostname contains characters not allowed in file names"
	case strings.Contains(hostname, ".."):
		return "hostname contains '..'"
	}
	return ""
}
