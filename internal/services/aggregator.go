package services

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"attractions-walker/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

const DefaultRadiusM = 20000

// Place types searched for. Order matters to multi-type directory adapters,
// which walk them one after another.
var DefaultCategories = []string{
	"amusement_park",
	"aquarium",
	"art_gallery",
	"bowling_alley",
	"casino",
	"movie_theater",
	"museum",
	"zoo",
}

// PageSink receives aggregation output for one session.
type PageSink interface {
	// AppendPage adds a shuffled page and returns the result set size after it.
	// domain.ErrExhausted stops paging without failing the run.
	AppendPage(ctx context.Context, page []domain.Place) (int, error)
	// Finish is called once when paging stops. exhausted is true when no
	// place was ever aggregated.
	Finish(ctx context.Context, exhausted bool) error
}

// Aggregator pages through the nearby-search directory for one location.
type Aggregator struct {
	Searcher   ports.NearbySearcher
	RadiusM    int
	Categories []string
	// NewRand returns the generator used for one aggregation run.
	NewRand func() *rand.Rand
}

func NewAggregator(searcher ports.NearbySearcher, radiusM int) *Aggregator {
	if radiusM <= 0 {
		radiusM = DefaultRadiusM
	}
	return &Aggregator{
		Searcher:   searcher,
		RadiusM:    radiusM,
		Categories: DefaultCategories,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// Aggregate requests every available page in order, shuffling each page
// on its own before appending it. The next page is only requested once the
// current one has been appended.
//
// A failed page ends paging. It exhausts the session only when nothing has
// been aggregated yet; otherwise earlier pages stay usable. The returned
// error reports sink failures only.
func (a *Aggregator) Aggregate(ctx context.Context, at domain.Coordinates, sink PageSink) (err error) {
	defer obs.Time(ctx, "aggregator.Aggregate")(&err)

	rng := a.NewRand()
	seen := make(map[string]struct{})
	total := 0

	page, err := a.Searcher.SearchNearby(ctx, ports.NearbySearchRequest{
		Location: at,
		RadiusM:  a.RadiusM,
		Types:    a.Categories,
	})

	for pageNo := 1; ; pageNo++ {
		if err != nil {
			log.Printf("aggregate: page=%d directory failure total=%d err=%v", pageNo, total, err)
			break
		}
		if !page.OK() {
			log.Printf("aggregate: page=%d status=%s total=%d", pageNo, page.Status, total)
			break
		}

		places := uniquePlaces(page.Places, seen)
		Shuffle(rng, places)

		var n int
		n, err = sink.AppendPage(ctx, places)
		if errors.Is(err, domain.ErrExhausted) {
			log.Printf("aggregate: page=%d session already exhausted, stop paging", pageNo)
			break
		}
		if err != nil {
			return fmt.Errorf("aggregate: append page %d: %w", pageNo, err)
		}
		total = n

		if !page.HasNextPage() {
			break
		}
		page, err = a.Searcher.NextPage(ctx, page.NextPageToken)
	}

	if err := sink.Finish(ctx, total == 0); err != nil {
		return fmt.Errorf("aggregate: finish: %w", err)
	}
	return nil
}

// uniquePlaces drops places already aggregated; a place matching several
// categories is listed once per category by the directory.
func uniquePlaces(places []domain.Place, seen map[string]struct{}) []domain.Place {
	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if p.PlaceID != "" {
			if _, ok := seen[p.PlaceID]; ok {
				continue
			}
			seen[p.PlaceID] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
