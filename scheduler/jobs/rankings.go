package jobs

import (
	"context"
	"fmt"
	"log"
)

type rankingPersister interface {
	PersistRankings(ctx context.Context) (int, error)
}

// PersistRankings writes the current standings on the roster rows.
func PersistRankings(deps *Dependencies) error {
	return persistRankings(context.Background(), deps.rankingService())
}

func persistRankings(ctx context.Context, service rankingPersister) error {
	log.Println("Starting rankings persistence")

	count, err := service.PersistRankings(ctx)
	if err != nil {
		return fmt.Errorf("couldn't persist the rankings: %w", err)
	}

	log.Printf("Persisted the standings of %d players", count)
	return nil
}
