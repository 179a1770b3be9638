package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
	"github.com/Dosada05/pool-league/storage"
)

// In-memory repository fakes. They mirror the ordering guarantees of the
// postgres implementations so the services see the same world.

type fakeSeasonRepo struct {
	mu      sync.Mutex
	nextID  int
	seasons map[int]*models.Season
}

func newFakeSeasonRepo() *fakeSeasonRepo {
	return &fakeSeasonRepo{seasons: make(map[int]*models.Season)}
}

func (r *fakeSeasonRepo) Create(_ context.Context, season *models.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.seasons {
		if existing.Year == season.Year && existing.Period == season.Period {
			return repositories.ErrSeasonConflict
		}
	}
	r.nextID++
	season.ID = r.nextID
	clone := *season
	r.seasons[season.ID] = &clone
	return nil
}

func (r *fakeSeasonRepo) GetByID(_ context.Context, id int) (*models.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	season, ok := r.seasons[id]
	if !ok {
		return nil, repositories.ErrSeasonNotFound
	}
	clone := *season
	return &clone, nil
}

func (r *fakeSeasonRepo) FindByDescriptor(_ context.Context, desc models.SeasonDescriptor) (*models.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, season := range r.seasons {
		if season.Year == desc.Year && season.Period == desc.Period {
			clone := *season
			return &clone, nil
		}
	}
	return nil, repositories.ErrSeasonNotFound
}

func (r *fakeSeasonRepo) List(_ context.Context) ([]*models.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Season, 0, len(r.seasons))
	for _, season := range r.seasons {
		clone := *season
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Period > out[j].Period
	})
	return out, nil
}

func (r *fakeSeasonRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.SeasonStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	season, ok := r.seasons[id]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	season.Status = status
	return nil
}

func (r *fakeSeasonRepo) SetPlayoffsGenerated(_ context.Context, _ repositories.SQLExecutor, id int, generated bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	season, ok := r.seasons[id]
	if !ok {
		return repositories.ErrSeasonNotFound
	}
	season.PlayoffsGenerated = generated
	return nil
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	nextID  int
	players map[int]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player)}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	player.ID = r.nextID
	clone := *player
	r.players[player.ID] = &clone
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	clone := *player
	return &clone, nil
}

func (r *fakePlayerRepo) ListByIDs(_ context.Context, ids []int) ([]*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if player, ok := r.players[id]; ok {
			clone := *player
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) List(_ context.Context) ([]*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Player, 0, len(r.players))
	for _, player := range r.players {
		clone := *player
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.SeasonID == team.SeasonID && existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	r.nextID++
	team.ID = r.nextID
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) ListBySeason(_ context.Context, seasonID int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Team, 0)
	for _, team := range r.teams {
		if team.SeasonID == seasonID {
			clone := *team
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) ListByIDs(_ context.Context, ids []int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Team, 0, len(ids))
	for _, id := range ids {
		if team, ok := r.teams[id]; ok {
			clone := *team
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) FindByName(_ context.Context, seasonID int, name string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if team.SeasonID == seasonID && team.Name == name {
			clone := *team
			return &clone, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) FindByPlayer(_ context.Context, seasonID int, playerID int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if team.SeasonID == seasonID && team.HasPlayer(playerID) {
			clone := *team
			return &clone, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) CountBySeason(_ context.Context, seasonID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, team := range r.teams {
		if team.SeasonID == seasonID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, teamID int, logoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	match.ID = r.nextID
	clone := *match
	r.matches[match.ID] = &clone
	return nil
}

func (r *fakeMatchRepo) InsertMany(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, exec, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

func matchesFilter(m *models.Match, filter repositories.ListMatchesFilter) bool {
	if filter.Phase != nil && m.Phase != *filter.Phase {
		return false
	}
	if filter.Status != nil && m.Status != *filter.Status {
		return false
	}
	if filter.SeriesKey != nil && (m.SeriesKey == nil || *m.SeriesKey != *filter.SeriesKey) {
		return false
	}
	if filter.Week != nil && m.Week != *filter.Week {
		return false
	}
	return true
}

func (r *fakeMatchRepo) ListBySeason(_ context.Context, seasonID int, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.SeasonID == seasonID && matchesFilter(m, filter) {
			clone := *m
			out = append(out, &clone)
		}
	}
	intOrZero := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}
	strOrEmpty := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Phase != b.Phase {
			return a.Phase < b.Phase
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if intOrZero(a.Round) != intOrZero(b.Round) {
			return intOrZero(a.Round) < intOrZero(b.Round)
		}
		if strOrEmpty(a.SeriesKey) != strOrEmpty(b.SeriesKey) {
			return strOrEmpty(a.SeriesKey) < strOrEmpty(b.SeriesKey)
		}
		if intOrZero(a.GameNumber) != intOrZero(b.GameNumber) {
			return intOrZero(a.GameNumber) < intOrZero(b.GameNumber)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *fakeMatchRepo) CountBySeason(ctx context.Context, seasonID int, filter repositories.ListMatchesFilter) (int, error) {
	matches, err := r.ListBySeason(ctx, seasonID, filter)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func (r *fakeMatchRepo) Update(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	clone := *match
	r.matches[match.ID] = &clone
	return nil
}

func (r *fakeMatchRepo) DeleteSeriesGamesAfter(_ context.Context, _ repositories.SQLExecutor, seasonID int, seriesKey string, gameNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.matches {
		if m.SeasonID != seasonID || m.SeriesKey == nil || *m.SeriesKey != seriesKey {
			continue
		}
		if m.GameNumber != nil && *m.GameNumber > gameNumber {
			delete(r.matches, id)
		}
	}
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads map[string]string // key -> content type
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads[key] = contentType
	return &storage.UploadResult{
		Key:      key,
		Location: "https://cdn.test/" + key,
		ETag:     "fake-etag",
	}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
