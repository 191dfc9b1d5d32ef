// Package catalog exposes the browsable surface of the guideline corpus:
// human-readable namespace names with vector counts, and curated example
// questions grouped by guideline year.
package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
)

// The ingestion pipeline hashes folder paths into namespace ids, so a raw
// namespace listing shows md5 digests. Known folder layouts for the
// 설계실무지침 corpus, probed per year.
const (
	folderSlash      = "설계실무지침/%d"
	folderUnderscore = "설계실무지침_%d"

	firstYear = 2014
	lastYear  = 2030
)

// DefaultNamespaceName labels the unnamed default namespace.
const DefaultNamespaceName = "(기본)"

// StatsProvider reports per-namespace vector counts.
type StatsProvider interface {
	Stats(ctx context.Context) (domain.IndexStats, error)
}

// Namespace is one corpus partition with its resolved display name.
type Namespace struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	VectorCount int    `json:"vector_count"`
}

// Listing is the browsable namespace inventory plus the corpus-wide total.
type Listing struct {
	TotalVectors int         `json:"total_vector_count"`
	Namespaces   []Namespace `json:"namespaces"`
}

// Service resolves namespace display names against live index stats.
type Service struct {
	stats      StatsProvider
	logger     *zap.Logger
	displayMap map[string]string
}

// New builds the md5 digest-to-folder display map for every known folder
// spelling and year.
func New(stats StatsProvider, logger *zap.Logger) *Service {
	displayMap := make(map[string]string, 2*(lastYear-firstYear+1))
	for year := firstYear; year <= lastYear; year++ {
		for _, pattern := range []string{folderSlash, folderUnderscore} {
			folder := fmt.Sprintf(pattern, year)
			sum := md5.Sum([]byte(folder))
			displayMap[hex.EncodeToString(sum[:])] = folder
		}
	}
	return &Service{stats: stats, logger: logger, displayMap: displayMap}
}

// DisplayName resolves a namespace id to its folder name. Unknown ids map to
// themselves; the empty id is the default namespace.
func (s *Service) DisplayName(id string) string {
	if id == "" {
		return DefaultNamespaceName
	}
	if name, ok := s.displayMap[id]; ok {
		return name
	}
	return id
}

// Namespaces lists the live namespaces with display names and vector counts,
// sorted by display name for a stable listing, along with the index-wide
// vector total.
func (s *Service) Namespaces(ctx context.Context) (Listing, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("list namespaces: %w", err)
	}

	out := make([]Namespace, 0, len(stats.Namespaces))
	for id, count := range stats.Namespaces {
		out = append(out, Namespace{
			ID:          id,
			DisplayName: s.DisplayName(id),
			VectorCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return Listing{TotalVectors: stats.TotalVectors, Namespaces: out}, nil
}
