// Package supabase mirrors the computed ratings to a hosted Supabase table read by the club site.
package supabase

import (
	"context"
	"fmt"
	"log"
	"sort"

	"chessclub/pkg/config"

	"github.com/nedpals/supabase-go"
)

// updateFunc writes the values on the row with the given id.
type updateFunc func(table, id string, values map[string]any) error

// RatingMirror pushes ratings to the players table.
type RatingMirror struct {
	table  string
	update updateFunc
}

// NewRatingMirror creates the mirror from the configuration.
func NewRatingMirror(cfg config.SupabaseConfiguration) *RatingMirror {
	client := supabase.CreateClient(cfg.URL, cfg.Key)

	return &RatingMirror{
		table: cfg.Table,
		update: func(table, id string, values map[string]any) error {
			var results []map[string]any
			return client.DB.From(table).Update(values).Eq("id", id).Execute(&results)
		},
	}
}

// MirrorRatings writes every rating, returning the number of failed rows.
func (m *RatingMirror) MirrorRatings(ctx context.Context, ratings map[string]int) (int, error) {
	ids := make([]string, 0, len(ratings))
	for id := range ratings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	failed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		if err := m.update(m.table, id, map[string]any{"elo_rating": ratings[id]}); err != nil {
			log.Printf("Failed to mirror rating of %s: %v", id, err)
			failed++
		}
	}

	if failed == len(ids) && failed > 0 {
		return failed, fmt.Errorf("couldn't mirror any of the %d ratings", failed)
	}
	return failed, nil
}
