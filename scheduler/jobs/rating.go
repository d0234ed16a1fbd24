package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"chessclub/api/dto"
	"chessclub/pkg/config"
	"chessclub/pkg/logger"
	"chessclub/pkg/messages"
)

type ratingRecalculator interface {
	CalculateEloForAllGames(ctx context.Context) (*dto.EloRecalculation, error)
}

// Bucket uploader of the job log.
type logUploader interface {
	UploadToS3Bucket(ctx context.Context, bucket config.BucketConfiguration, objectKey string) error
}

// RecalculateRatings replays the whole game log and rewrites every rating.
// The run is logged to a file that is uploaded to the log bucket when one is configured.
func RecalculateRatings(deps *Dependencies) error {
	log.Println("Starting rating recalculation")

	jobLogger, err := logger.CreateLogger()
	if err != nil {
		return fmt.Errorf("couldn't create the job logger: %w", err)
	}
	defer jobLogger.Close()

	service := deps.ratingService().WithLogger(jobLogger)

	return recalculate(context.Background(), service, jobLogger, jobLogger, deps.Config.Bucket)
}

func recalculate(ctx context.Context, service ratingRecalculator, jobLogger logger.Logger, uploader logUploader, bucket config.BucketConfiguration) error {
	startTime := time.Now()

	result, err := service.CalculateEloForAllGames(ctx)
	switch {
	case err != nil && err.Error() == messages.OperationInProgress:
		log.Println("Rating recalculation already running, skipping")
		return nil
	case err != nil:
		jobLogger.Errorf("Rating recalculation failed: %v", err)
	default:
		jobLogger.Infof("Rating recalculation took %s: %d games processed, %d skipped", time.Since(startTime), result.Processed, result.Errors)
	}

	if bucket.Enabled() {
		objectKey := fmt.Sprintf("ratings/%s.log", startTime.UTC().Format("2006-01-02T15-04-05"))
		if uploadErr := uploader.UploadToS3Bucket(ctx, bucket, objectKey); uploadErr != nil {
			log.Printf("Couldn't upload the rating log: %v", uploadErr)
		}
	}

	if err != nil {
		return fmt.Errorf("rating recalculation failed: %w", err)
	}

	log.Println("Finished rating recalculation")
	return nil
}
