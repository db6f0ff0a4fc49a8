// Package catalog persists the host catalog as a CSV file.
//
// The file always starts with the header hostname,description,last_connected,
// even when no hosts are stored. Rows are RFC 4180 quoted. Files written by
// older versions with only two columns are read without complaint. Every
// mutation rewrites the whole file through a temp file and rename.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// TimestampLayout is the day-first local format of last_connected.
const TimestampLayout = "02/01/2006 15:04:05"

var header = []string{"hostname", "description", "last_connected"}

// utf8BOM prefixes catalogs saved by Windows editors.
var utf8BOM = []byte("\ufeff")

// Store is the file-backed host catalog. A Store serialises its own
// read-modify-write cycles; separate Stores on the same file do not.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the catalog file location.
func (s *Store) Path() string { return s.path }

// GetAll returns every host in file order. A missing file yields no hosts.
func (s *Store) GetAll() ([]models.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Get returns the host with exactly this hostname, or nil.
func (s *Store) Get(hostname string) (*models.Host, error) {
	hosts, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	for _, h := range hosts {
		if h.Hostname == hostname {
			return &h, nil
		}
	}
	return nil, nil
}

// Search returns hosts whose hostname or description contains query,
// ignoring case, in catalog order. An empty query returns all hosts.
func (s *Store) Search(query string) ([]models.Host, error) {
	hosts, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Host, 0, len(hosts))
	for _, h := range hosts {
		if h.Matches(query) {
			out = append(out, h)
		}
	}
	return out, nil
}

// Upsert replaces the row with the same hostname in place, or appends.
func (s *Store) Upsert(host models.Host) error {
	if strings.TrimSpace(host.Hostname) == "" {
		return apperr.InvalidHostname(host.Hostname, "hostname cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hosts, err := s.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range hosts {
		if hosts[i].Hostname == host.Hostname {
			hosts[i] = host
			replaced = true
			break
		}
	}
	if !replaced {
		hosts = append(hosts, host)
	}
	return s.write(hosts)
}

// Delete removes the row for hostname. Deleting an absent host succeeds.
func (s *Store) Delete(hostname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hosts, err := s.read()
	if err != nil {
		return err
	}
	kept := hosts[:0]
	for _, h := range hosts {
		if h.Hostname != hostname {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(hosts) {
		return nil
	}
	return s.write(kept)
}

// DeleteAll rewrites the catalog to the header only.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(nil)
}

// ReplaceAll overwrites the catalog with hosts, in the given order.
func (s *Store) ReplaceAll(hosts []models.Host) error {
	for _, h := range hosts {
		if strings.TrimSpace(h.Hostname) == "" {
			return apperr.InvalidHostname(h.Hostname, "hostname cannot be empty")
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(hosts)
}

// UpdateLastConnected stamps the row for hostname with the current local
// time and returns the stamp.
func (s *Store) UpdateLastConnected(hostname string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hosts, err := s.read()
	if err != nil {
		return "", err
	}
	stamp := s.now().Local().Format(TimestampLayout)
	for i := range hosts {
		if hosts[i].Hostname == hostname {
			hosts[i].LastConnected = &stamp
			return stamp, s.write(hosts)
		}
	}
	return "", apperr.HostNotFound(hostname)
}

func (s *Store) read() ([]models.Host, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Host{}, nil
		}
		return nil, apperr.Catalog("read", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	hosts := make([]models.Host, 0)
	for i, rec := range parseRecords(data) {
		if i == 0 && isHeader(rec) {
			continue
		}
		if len(rec) < 2 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		h := models.Host{Hostname: rec[0], Description: rec[1]}
		if len(rec) >= 3 && rec[2] != "" {
			lc := rec[2]
			h.LastConnected = &lc
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rec[0]), header[0])
}

// parseRecords reads every well-formed record in data. A malformed record
// costs only the line it starts on: parsing resumes on the following line.
func parseRecords(data []byte) [][]string {
	var recs [][]string
	for len(data) > 0 {
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		for {
			rec, err := r.Read()
			if err == nil {
				recs = append(recs, rec)
				continue
			}
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return recs
			}
			data = dropLines(data, pe.StartLine)
			break
		}
	}
	return recs
}

// dropLines returns data without its first n lines.
func dropLines(data []byte, n int) []byte {
	if n < 1 {
		n = 1
	}
	for ; n > 0; n-- {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil
		}
		data = data[i+1:]
	}
	return data
}

func (s *Store) write(hosts []models.Host) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return apperr.Catalog("write", err)
	}
	for _, h := range hosts {
		lc := ""
		if h.LastConnected != nil {
			lc = *h.LastConnected
		}
		if err := w.Write([]string{h.Hostname, h.Description, lc}); err != nil {
			return apperr.Catalog("write", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperr.Catalog("write", err)
	}
	if err := filex.WriteAtomic(s.path, buf.Bytes()); err != nil {
		return apperr.Catalog("write", err)
	}
	return nil
}
