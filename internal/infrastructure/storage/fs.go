package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/gearworks/internal/domain"
)

// FS stores levels as JSON files bucketed by tier: {dir}/tier-{n}/{id}.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var errInvalidID = errors.New("invalid level: bad ID")

func tierDir(tier int) string {
	if tier < 1 {
		tier = 1
	}
	return fmt.Sprintf("tier-%d", tier)
}

func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FS) pathFor(id string, tier int) string {
	return filepath.Join(s.dir, tierDir(tier), strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, l *domain.Level) error {
	if l == nil || !validID(l.ID) {
		return errInvalidID
	}
	// Ensure directory ./data/tier-{n} exists
	target := s.pathFor(l.ID, l.Tier)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// Load finds id in any tier bucket.
func (s *FS) Load(ctx context.Context, id string) (*domain.Level, error) {
	if !validID(id) {
		return nil, errInvalidID
	}
	buckets, err := s.buckets()
	if err != nil {
		return nil, err
	}
	for _, b := range buckets {
		data, err := os.ReadFile(filepath.Join(b, strings.TrimSpace(id)+".json"))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var out domain.Level
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// List returns metadata for every stored level ordered by level index, then ID.
func (s *FS) List(ctx context.Context) ([]domain.LevelMeta, error) {
	type m struct {
		ID         string `json:"id"`
		Name       string `json:"name,omitempty"`
		LevelIndex int    `json:"levelIndex"`
		Tier       int    `json:"tier"`
		CreatedAt  int64  `json:"createdAt"`
	}

	buckets, err := s.buckets()
	if err != nil {
		return nil, err
	}
	var out []domain.LevelMeta
	for _, b := range buckets {
		ents, err := os.ReadDir(b)
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(b, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			out = append(out, domain.LevelMeta{
				ID:         mm.ID,
				Name:       mm.Name,
				LevelIndex: mm.LevelIndex,
				Tier:       mm.Tier,
				CreatedAt:  mm.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LevelIndex != out[j].LevelIndex {
			return out[i].LevelIndex < out[j].LevelIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// buckets lists the tier directories that exist under dir.
func (s *FS) buckets() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() && strings.HasPrefix(e.Name(), "tier-") {
			out = append(out, filepath.Join(s.dir, e.Name()))
		}
	}
	return out, nil
}
