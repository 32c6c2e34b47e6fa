package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/facette/natsort"
	"github.com/san-kum/doppler/internal/broadening"
)

const profileFile = "profile.json"

// Store keeps named parameter profiles, one directory per profile.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Profile struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Note      string            `json:"note,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Params    broadening.Params `json:"params"`
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func slug(name string) string {
	s := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(name), "-"), "-")
	if s == "" {
		return "profile"
	}
	return strings.ToLower(s)
}

// Save validates p and stores it under a new id derived from name.
func (s *Store) Save(name, note string, p broadening.Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	ts := s.now()
	base := fmt.Sprintf("%s_%d", slug(name), ts.Unix())
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.baseDir, id)); os.IsNotExist(err) {
			break
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}

	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	prof := Profile{
		ID:        id,
		Name:      name,
		Note:      note,
		Timestamp: ts,
		Params:    p,
	}

	f, err := os.Create(filepath.Join(dir, profileFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prof); err != nil {
		return "", err
	}
	return id, nil
}

// List returns every readable profile in natural id order.
func (s *Store) List() ([]Profile, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, err
	}

	profiles := make([]Profile, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		prof, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		profiles = append(profiles, *prof)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return natsort.Compare(profiles[i].ID, profiles[j].ID)
	})
	return profiles, nil
}

func (s *Store) Load(id string) (*Profile, error) {
	if id == "" || id != filepath.Base(id) {
		return nil, fmt.Errorf("invalid profile id: %q", id)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, profileFile))
	if err != nil {
		return nil, err
	}

	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, err
	}
	return &prof, nil
}
