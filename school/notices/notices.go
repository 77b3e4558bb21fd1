// Package notices is the notice board.
package notices

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Notice struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	PostedBy string `json:"postedBy,omitempty"`
	Date     string `json:"date"`
}

type Board struct {
	store  docstore.Store
	logger *log.Entry
}

func NewBoard(store docstore.Store) *Board {
	return &Board{
		store:  store,
		logger: log.WithFields(log.Fields{"service": "notices"}),
	}
}

func (b *Board) Post(ctx context.Context, notice Notice) (Notice, error) {
	if strings.TrimSpace(notice.Title) == "" || strings.TrimSpace(notice.Details) == "" {
		return Notice{}, school.ErrMissingRequiredField
	}
	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	if err := b.store.Upsert(ctx, docstore.CollectionNotices, notice.ID, notice); err != nil {
		return Notice{}, fmt.Errorf("saving notice: %w", err)
	}
	b.logger.WithFields(log.Fields{"notice": notice.ID}).Info("posted notice")
	return notice, nil
}

// List returns notices newest first.
func (b *Board) List(ctx context.Context) ([]Notice, error) {
	docs, err := b.store.ListAll(ctx, docstore.CollectionNotices)
	if err != nil {
		return nil, err
	}
	notices := make([]Notice, 0, len(docs))
	for _, d := range docs {
		var n Notice
		if err := d.Decode(&n); err != nil {
			return nil, fmt.Errorf("decoding notice %s: %w", d.ID, err)
		}
		notices = append(notices, n)
	}
	sort.Slice(notices, func(i, j int) bool {
		return notices[i].Date > notices[j].Date
	})
	return notices, nil
}

// Search matches by title substring and/or exact date; empty arguments
// match everything.
func (b *Board) Search(ctx context.Context, title string, date string) ([]Notice, error) {
	all, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	title = strings.ToLower(strings.TrimSpace(title))
	var matched []Notice
	for _, n := range all {
		if title != "" && !strings.Contains(strings.ToLower(n.Title), title) {
			continue
		}
		if date != "" && n.Date != date {
			continue
		}
		matched = append(matched, n)
	}
	return matched, nil
}

func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.store.Delete(ctx, docstore.CollectionNotices, id); err != nil {
		return fmt.Errorf("deleting notice: %w", err)
	}
	return nil
}
