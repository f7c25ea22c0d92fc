package redis

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/model"
)

// Key prefix for all battleship data
const keyPrefix = "battleship"

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchIndexKey returns the Redis key for the ZSET of match IDs scored by finish time
func matchIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}
