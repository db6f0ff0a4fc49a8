// Package recent keeps the bounded list of most recently connected hosts.
//
// The log is persisted as a pretty-printed JSON document:
//
//	{
//	  "connections": [
//	    {"hostname": "db01.corp.example.com", "description": "DB primary", "timestamp": 1735689600}
//	  ]
//	}
//
// Entries are ordered most recent first, hostnames are unique and the list
// never exceeds Capacity.
package recent

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// Capacity is the maximum number of entries kept.
const Capacity = 5

// Log is the in-memory form of the document.
type Log struct {
	Connections []models.RecentEntry `json:"connections"`
}

// Add moves hostname to the front with timestamp ts and drops entries past
// Capacity.
func (l *Log) Add(hostname, description string, ts int64) {
	kept := make([]models.RecentEntry, 0, len(l.Connections)+1)
	kept = append(kept, models.RecentEntry{Hostname: hostname, Description: description, Timestamp: ts})
	for _, e := range l.Connections {
		if e.Hostname != hostname {
			kept = append(kept, e)
		}
	}
	if len(kept) > Capacity {
		kept = kept[:Capacity]
	}
	l.Connections = kept
}

// Store reads and writes the log file.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted log. A missing file yields an empty log.
func (s *Store) Load() (*Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add records a connection to hostname at the current wall-clock second and
// persists the result.
func (s *Store) Add(hostname, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load()
	if err != nil {
		return err
	}
	l.Add(hostname, description, s.now().Unix())
	return s.save(l)
}

// Save overwrites the file with l.
func (s *Store) Save(l *Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(l)
}

// Remove deletes the file. A missing file is not an error.
func (s *Store) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := filex.RemoveIfExists(s.path); err != nil {
		return apperr.File(s.path, err)
	}
	return nil
}

func (s *Store) load() (*Log, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Log{Connections: []models.RecentEntry{}}, nil
		}
		return nil, apperr.File(s.path, err)
	}
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, apperr.Document("recent connections", err)
	}
	if l.Connections == nil {
		l.Connections = []models.RecentEntry{}
	}
	return &l, nil
}

func (s *Store) save(l *Log) error {
	if l.Connections == nil {
		l.Connections = []models.RecentEntry{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return apperr.Document("recent connections", err)
	}
	if err := filex.WriteAtomic(s.path, data); err != nil {
		return apperr.File(s.path, err)
	}
	return nil
}
