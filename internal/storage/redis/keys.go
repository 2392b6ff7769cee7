package redis

import (
	"fmt"

	"github.com/mcoot/memorygame-go/internal/model"
)

// Key prefix for all memory game data
const keyPrefix = "memgame"

// tableKey returns the Redis key for a Table
func tableKey(id model.TableID) string {
	return fmt.Sprintf("%s:table:%s", keyPrefix, id)
}

// scoresKey returns the Redis key for the LIST of score records for a table
func scoresKey(id model.TableID) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, id)
}
