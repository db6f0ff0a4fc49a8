// Package directory discovers Windows servers in Active Directory.
//
// A scan binds to a domain controller with the user's credentials and lists
// computer objects whose operatingSystem starts with "Windows Server" and
// that have a dNSHostName. Plain LDAP on port 389 is the default; LDAPS on
// port 636 can be enabled with Options.UseTLS.
package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/credentials"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

const (
	// Filter selects Windows Server computer accounts with a DNS name.
	Filter = "(&(objectClass=computer)(operatingSystem=Windows Server*)(dNSHostName=*))"

	pageSize = 500
)

// Attributes requested for every entry.
var Attributes = []string{"dNSHostName", "description", "operatingSystem"}

// ErrNoMatches is the cause of the LdapSearchError returned when the search
// succeeds but finds nothing.
var ErrNoMatches = errors.New("no matches")

// Conn is the part of *ldap.Conn a scan uses.
type Conn interface {
	Bind(username, password string) error
	SearchWithPaging(req *ldap.SearchRequest, pagingSize uint32) (*ldap.SearchResult, error)
	Unbind() error
	Close() error
}

// Dialer opens a connection to an LDAP URL.
type Dialer func(ctx context.Context, url string, tlsConfig *tls.Config) (Conn, error)

// DialLDAP is the production Dialer.
func DialLDAP(ctx context.Context, url string, tlsConfig *tls.Config) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := []ldap.DialOpt{ldap.DialWithDialer(&net.Dialer{})}
	if tlsConfig != nil {
		opts = append(opts, ldap.DialWithTLSConfig(tlsConfig))
	}
	conn, err := ldap.DialURL(url, opts...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

type Options struct {
	// Port overrides the default port (389, or 636 with UseTLS).
	Port   int
	UseTLS bool
}

// Scanner runs directory scans.
type Scanner struct {
	dial Dialer
	opts Options
	log  logging.Logger
}

func NewScanner(dial Dialer, opts Options, log logging.Logger) *Scanner {
	if dial == nil {
		dial = DialLDAP
	}
	if opts.Port == 0 {
		opts.Port = common.LDAPPort
		if opts.UseTLS {
			opts.Port = common.LDAPSPort
		}
	}
	return &Scanner{dial: dial, opts: opts, log: log}
}

// FormatBaseDN turns a dotted domain into DC=a,DC=b,... Empty labels are
// skipped.
func FormatBaseDN(domain string) string {
	labels := strings.Split(domain, ".")
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		parts = append(parts, "DC="+l)
	}
	return strings.Join(parts, ",")
}

// Scan lists the Windows servers of domain as seen by server, authenticating
// as id. The returned hosts have no last-connected stamp.
func (s *Scanner) Scan(ctx context.Context, domain, server string, id models.Identity) (*models.ScanResult, error) {
	domain = strings.TrimSpace(domain)
	server = strings.TrimSpace(server)
	if domain == "" {
		return nil, apperr.InvalidHostname(domain, "domain cannot be empty")
	}
	if server == "" {
		return nil, apperr.InvalidHostname(server, "server cannot be empty")
	}

	scheme := "ldap"
	var tlsConfig *tls.Config
	if s.opts.UseTLS {
		scheme = "ldaps"
		tlsConfig = &tls.Config{ServerName: server}
	}
	url := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(server, fmt.Sprint(s.opts.Port)))

	s.log.Info(ctx, "connecting to directory", "url", url)
	conn, err := s.dial(ctx, url, tlsConfig)
	if err != nil {
		return nil, apperr.LdapConnection(server, s.opts.Port, err)
	}
	defer conn.Close()

	bindName := credentials.BindName(id.Username, domain)
	s.log.Debug(ctx, "binding", "username", bindName, "secret_len", len(id.Secret))
	if err := conn.Bind(bindName, id.Secret); err != nil {
		return nil, apperr.LdapBind(bindName, err)
	}

	baseDN := FormatBaseDN(domain)
	req := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		Filter,
		Attributes,
		nil,
	)
	res, err := conn.SearchWithPaging(req, pageSize)
	if err != nil {
		return nil, apperr.LdapSearch(baseDN, err)
	}

	hosts := make([]models.Host, 0, len(res.Entries))
	for _, e := range res.Entries {
		dnsName := e.GetAttributeValue("dNSHostName")
		if dnsName == "" {
			s.log.Warn(ctx, "skipping entry without dNSHostName", "dn", e.DN)
			continue
		}
		hosts = append(hosts, models.Host{
			Hostname:    dnsName,
			Description: e.GetAttributeValue("description"),
		})
	}

	if err := conn.Unbind(); err != nil {
		s.log.Warn(ctx, "unbind failed", "error", err)
	}

	if len(hosts) == 0 {
		return nil, apperr.LdapSearch(baseDN, ErrNoMatches)
	}

	s.log.Info(ctx, "directory scan finished", "base_dn", baseDN, "hosts", len(hosts))
	return &models.ScanResult{Hosts: hosts, Count: len(hosts)}, nil
}
