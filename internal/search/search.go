// Package search finds destinations related to each other through the
// sqlite-vec index and blends keyword and vector hits for free-text queries.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/go-ports/gomate/internal/db"
	"github.com/go-ports/gomate/internal/embeddings"
	"github.com/go-ports/gomate/internal/models"
)

// ErrNoProvider is returned by Reindex when no embedding provider is configured.
var ErrNoProvider = errors.New("no embedding provider configured (related.provider is none)")

// Catalog is the read side of the destination catalog.
type Catalog interface {
	All() []models.Destination
	ByID(id string) (models.Destination, bool)
	Search(query string) []models.Destination
}

// Result is a single hit with a relevance score in [0, 1].
type Result struct {
	Destination models.Destination `json:"destination"`
	Score       float64            `json:"score"`
}

// Document returns the text embedded for d.
func Document(d models.Destination) string {
	parts := []string{d.Name, d.Location, d.Category, d.Description}
	parts = append(parts, d.Highlights...)
	return strings.Join(parts, ". ")
}

// ---------------------------------------------------------------------------
// Index
// ---------------------------------------------------------------------------

// ReindexResult summarizes a Reindex run.
type ReindexResult struct {
	Count    int
	Provider string
	Dim      int
}

// Reindex drops the vector table and embeds every catalog entry again.
// progress, when non-nil, is called after each stored vector.
func Reindex(
	ctx context.Context,
	database *db.DB,
	ep embeddings.Provider,
	cat Catalog,
	progress func(current, total int),
) (ReindexResult, error) {
	if ep == nil {
		return ReindexResult{}, ErrNoProvider
	}
	all := cat.All()
	docs := make([]string, len(all))
	for i, d := range all {
		docs[i] = Document(d)
	}
	vecs, err := ep.EmbedBatch(ctx, docs)
	if err != nil {
		return ReindexResult{}, fmt.Errorf("Reindex: embed: %w", err)
	}
	res := ReindexResult{Provider: ep.Name()}
	if len(vecs) > 0 {
		res.Dim = len(vecs[0])
	}

	if err := database.DropVecTable(); err != nil {
		return ReindexResult{}, fmt.Errorf("Reindex: %w", err)
	}
	if err := database.SetEmbeddingDim(res.Dim); err != nil {
		return ReindexResult{}, fmt.Errorf("Reindex: %w", err)
	}
	if err := database.CreateVecTable(res.Dim); err != nil {
		return ReindexResult{}, fmt.Errorf("Reindex: %w", err)
	}
	for i, d := range all {
		rowid, err := rowID(d.ID)
		if err != nil {
			slog.Warn("search.Reindex: skipping destination", "id", d.ID, "err", err)
			continue
		}
		if err := database.InsertVector(rowid, vecs[i]); err != nil {
			return res, fmt.Errorf("Reindex: insert %s: %w", d.ID, err)
		}
		res.Count++
		if progress != nil {
			progress(i+1, len(all))
		}
	}
	return res, nil
}

// EnsureIndexed builds the index when it holds fewer vectors than the
// catalog has entries, and rebuilds it when it was built with a different
// dimension than ep produces.
func EnsureIndexed(ctx context.Context, database *db.DB, ep embeddings.Provider, cat Catalog) error {
	if ep == nil {
		return nil
	}
	probe, err := ep.Embed(ctx, "")
	if err != nil {
		return fmt.Errorf("EnsureIndexed: embed: %w", err)
	}
	err = database.EnsureVecTable(len(probe))
	if errors.Is(err, db.ErrDimensionMismatch) {
		slog.Info("search.EnsureIndexed: rebuilding index", "reason", err)
		_, err = Reindex(ctx, database, ep, cat, nil)
		return err
	}
	if err != nil {
		return err
	}
	n, err := database.CountVectors()
	if err != nil {
		return err
	}
	if n >= len(cat.All()) {
		return nil
	}
	_, err = Reindex(ctx, database, ep, cat, nil)
	return err
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Related returns up to limit destinations closest to id, excluding id
// itself. An unknown id or a missing provider yields an empty result.
func Related(
	ctx context.Context,
	database *db.DB,
	ep embeddings.Provider,
	cat Catalog,
	id string,
	limit int,
) ([]Result, error) {
	out := make([]Result, 0)
	d, ok := cat.ByID(id)
	if !ok || ep == nil || limit <= 0 {
		return out, nil
	}
	if err := EnsureIndexed(ctx, database, ep, cat); err != nil {
		return nil, err
	}
	vec, err := ep.Embed(ctx, Document(d))
	if err != nil {
		return nil, fmt.Errorf("Related: embed: %w", err)
	}
	hits, err := database.VectorSearch(vec, limit+1)
	if err != nil {
		return nil, err
	}
	for _, r := range hitsToResults(hits, cat) {
		if r.Destination.ID == id {
			continue
		}
		out = append(out, r)
	}
	return out[:clamp(limit, len(out))], nil
}

// Hybrid runs the catalog keyword search and, when a provider is
// configured, a vector search for query, then merges the two. Vector
// failures fall back to keyword results.
func Hybrid(
	ctx context.Context,
	database *db.DB,
	ep embeddings.Provider,
	cat Catalog,
	query string,
	limit int,
) ([]Result, error) {
	keyword := make([]Result, 0)
	for _, d := range cat.Search(query) {
		keyword = append(keyword, Result{Destination: d, Score: 1})
	}
	if ep == nil {
		return keyword[:clamp(limit, len(keyword))], nil
	}

	if err := EnsureIndexed(ctx, database, ep, cat); err != nil {
		slog.Warn("search.Hybrid: index unavailable", "err", err)
		return keyword[:clamp(limit, len(keyword))], nil
	}
	vec, err := ep.Embed(ctx, query)
	if err != nil {
		slog.Warn("search.Hybrid: embed failed", "err", err)
		return keyword[:clamp(limit, len(keyword))], nil
	}
	k := limit * 2
	if k <= 0 {
		k = len(cat.All())
	}
	hits, err := database.VectorSearch(vec, k)
	if err != nil {
		slog.Warn("search.Hybrid: vector search failed", "err", err)
		return keyword[:clamp(limit, len(keyword))], nil
	}
	return MergeResults(keyword, hitsToResults(hits, cat), 0.3, 0.7, limit), nil
}

// MergeResults combines keyword and vector results with weighted scoring.
// Each list is normalized to its own maximum first. Ties keep keyword
// results ahead, then first appearance.
func MergeResults(keyword, vector []Result, kwWeight, vecWeight float64, limit int) []Result {
	keyword = normalizeScores(keyword)
	vector = normalizeScores(vector)

	order := make([]string, 0, len(keyword)+len(vector))
	combined := make(map[string]*Result, len(keyword)+len(vector))
	for _, r := range keyword {
		r.Score *= kwWeight
		combined[r.Destination.ID] = &r
		order = append(order, r.Destination.ID)
	}
	for _, r := range vector {
		if existing, ok := combined[r.Destination.ID]; ok {
			existing.Score += vecWeight * r.Score
			continue
		}
		r.Score *= vecWeight
		combined[r.Destination.ID] = &r
		order = append(order, r.Destination.ID)
	}

	results := make([]Result, 0, len(order))
	for _, id := range order {
		results = append(results, *combined[id])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results[:clamp(limit, len(results))]
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func hitsToResults(hits []db.VectorHit, cat Catalog) []Result {
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		d, ok := cat.ByID(strconv.FormatInt(h.RowID, 10))
		if !ok {
			continue
		}
		out = append(out, Result{Destination: d, Score: 1 / (1 + h.Distance)})
	}
	return out
}

// normalizeScores returns a copy of rs with scores divided by the maximum.
func normalizeScores(rs []Result) []Result {
	out := make([]Result, len(rs))
	copy(out, rs)
	maxScore := 0.0
	for _, r := range out {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}
	for i := range out {
		out[i].Score /= maxScore
	}
	return out
}

// rowID maps a catalog id onto a vec0 rowid.
func rowID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("destination id %q is not numeric", id)
	}
	return n, nil
}

// clamp returns min(limit, n) when limit > 0, otherwise n.
func clamp(limit, n int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
