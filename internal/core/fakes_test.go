package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"aniview/pkg/models"
)

// fakeWatchlistRepo is an in-memory WatchlistRepository. Setting
// failWith makes every call error, simulating an unavailable store.
type fakeWatchlistRepo struct {
	entries  map[string]*models.WatchlistEntry
	failWith error
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{entries: make(map[string]*models.WatchlistEntry)}
}

func (r *fakeWatchlistRepo) Insert(_ context.Context, entry *models.WatchlistEntry) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.entries {
		if existing.UserID == entry.UserID && existing.AnimeID == entry.AnimeID {
			return fmt.Errorf("insert_entry: %w", models.ErrEntryExists)
		}
	}
	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

func (r *fakeWatchlistRepo) GetByID(_ context.Context, id string) (*models.WatchlistEntry, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("get_entry_by_id: %w", models.ErrEntryNotFound)
	}
	clone := *entry
	return &clone, nil
}

func (r *fakeWatchlistRepo) GetByUserAndAnime(_ context.Context, userID string, animeID int64) (*models.WatchlistEntry, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.AnimeID == animeID {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get_entry_by_user_anime: %w", models.ErrEntryNotFound)
}

func (r *fakeWatchlistRepo) ListByUser(_ context.Context, userID string) ([]models.WatchlistEntry, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var entries []models.WatchlistEntry
	for _, entry := range r.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (r *fakeWatchlistRepo) ListByUserAndStatus(_ context.Context, userID string, status models.WatchStatus) ([]models.WatchlistEntry, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var entries []models.WatchlistEntry
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Status == status {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (r *fakeWatchlistRepo) UpdateStatus(_ context.Context, entryID string, status models.WatchStatus, episodesWatched *int, score *float64) error {
	if r.failWith != nil {
		return r.failWith
	}
	entry, ok := r.entries[entryID]
	if !ok {
		return fmt.Errorf("update_status: %w", models.ErrEntryNotFound)
	}
	entry.Status = status
	if episodesWatched != nil {
		entry.EpisodesWatched = *episodesWatched
	}
	if score != nil {
		entry.Score = score
	}
	entry.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWatchlistRepo) SetEpisodesWatched(_ context.Context, entryID string, count int) error {
	if r.failWith != nil {
		return r.failWith
	}
	entry, ok := r.entries[entryID]
	if !ok {
		return fmt.Errorf("set_episodes_watched: %w", models.ErrEntryNotFound)
	}
	entry.EpisodesWatched = count
	entry.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWatchlistRepo) ResetProgress(_ context.Context, entryID string) error {
	if r.failWith != nil {
		return r.failWith
	}
	entry, ok := r.entries[entryID]
	if !ok {
		return fmt.Errorf("reset_progress: %w", models.ErrEntryNotFound)
	}
	entry.EpisodesWatched = 0
	entry.Score = nil
	entry.StartDate = nil
	entry.FinishDate = nil
	entry.UpdatedAt = time.Now()
	return nil
}

func (r *fakeWatchlistRepo) Delete(_ context.Context, entryID string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.entries[entryID]; !ok {
		return fmt.Errorf("delete_entry: %w", models.ErrEntryNotFound)
	}
	delete(r.entries, entryID)
	return nil
}

type episodeKey struct {
	userID  string
	animeID int64
	episode int
}

// fakeEpisodeRepo is an in-memory EpisodeRepository
type fakeEpisodeRepo struct {
	records  map[episodeKey]*models.EpisodeWatchRecord
	failWith error
}

func newFakeEpisodeRepo() *fakeEpisodeRepo {
	return &fakeEpisodeRepo{records: make(map[episodeKey]*models.EpisodeWatchRecord)}
}

func (r *fakeEpisodeRepo) Replace(_ context.Context, record *models.EpisodeWatchRecord) error {
	if r.failWith != nil {
		return r.failWith
	}
	key := episodeKey{record.UserID, record.AnimeID, record.EpisodeNumber}
	clone := *record
	r.records[key] = &clone
	return nil
}

func (r *fakeEpisodeRepo) Delete(_ context.Context, userID string, animeID int64, episodeNumber int) error {
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.records, episodeKey{userID, animeID, episodeNumber})
	return nil
}

func (r *fakeEpisodeRepo) DeleteAllForAnime(_ context.Context, userID string, animeID int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	for key := range r.records {
		if key.userID == userID && key.animeID == animeID {
			delete(r.records, key)
		}
	}
	return nil
}

func (r *fakeEpisodeRepo) ListEpisodeNumbers(_ context.Context, userID string, animeID int64) ([]int, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var numbers []int
	for key := range r.records {
		if key.userID == userID && key.animeID == animeID {
			numbers = append(numbers, key.episode)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

func (r *fakeEpisodeRepo) ListByUser(_ context.Context, userID string) ([]models.EpisodeWatchRecord, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var records []models.EpisodeWatchRecord
	for key, rec := range r.records {
		if key.userID == userID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (r *fakeEpisodeRepo) CountForAnime(_ context.Context, userID string, animeID int64) (int, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	count := 0
	for key := range r.records {
		if key.userID == userID && key.animeID == animeID {
			count++
		}
	}
	return count, nil
}

// capturingPublisher records published events for assertions
type capturingPublisher struct {
	events []models.ProgressEvent
}

func (p *capturingPublisher) Publish(event models.ProgressEvent) {
	p.events = append(p.events, event)
}
