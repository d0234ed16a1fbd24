package handlers

import (
	"fmt"

	"chessclub/pkg/messages"
)

// Check if the error is the repository answer for a missing record.
func isNotFound(err error, entity string) bool {
	return err != nil && err.Error() == fmt.Sprintf(messages.CouldNotFindId, entity)
}
