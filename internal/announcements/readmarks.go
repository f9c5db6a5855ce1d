package announcements

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ReadMarks tracks which announcements a member has already seen. Marks live
// in a per-user redis set; losing redis only resets unread badges, so this
// state never touches postgres.
type ReadMarks struct {
	rdb *redis.Client
}

// NewReadMarks builds ReadMarks instance.
func NewReadMarks(rdb *redis.Client) *ReadMarks {
	return &ReadMarks{rdb: rdb}
}

func readKey(userID int64) string {
	return "announcements:read:" + strconv.FormatInt(userID, 10)
}

// MarkRead records that the user has seen the announcement.
func (m *ReadMarks) MarkRead(ctx context.Context, userID, announcementID int64) error {
	if err := m.rdb.SAdd(ctx, readKey(userID), announcementID).Err(); err != nil {
		return fmt.Errorf("announcements: mark read: %w", err)
	}
	return nil
}

// ReadIDs returns the set of announcement IDs the user has seen.
func (m *ReadMarks) ReadIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	vals, err := m.rdb.SMembers(ctx, readKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("announcements: load read marks: %w", err)
	}
	ids := make(map[int64]bool, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		ids[id] = true
	}
	return ids, nil
}
