package service

import (
	"context"
	"testing"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/engine"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	repository.UserRepository
	user       *model.User
	pointsLogs []*model.PointsLog
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.user, nil
}

func (m *memUserRepo) Update(ctx context.Context, user *model.User) error {
	m.user = user
	return nil
}

func (m *memUserRepo) ApplyPointsDelta(ctx context.Context, userID uuid.UUID, delta int, action string, videoID *uuid.UUID) (int, error) {
	balance := m.user.PointsBalance + delta
	if balance < 0 {
		balance = 0
	}
	m.user.PointsBalance = balance
	m.pointsLogs = append(m.pointsLogs, &model.PointsLog{
		UserID:       userID,
		Action:       action,
		PointsChange: delta,
		BalanceAfter: balance,
	})
	return balance, nil
}

func (m *memUserRepo) IncrementAbandonmentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	m.user.ConsecutiveAbandonments++
	return m.user.ConsecutiveAbandonments, nil
}

func (m *memUserRepo) ResetAbandonmentStreak(ctx context.Context, userID uuid.UUID) error {
	m.user.ConsecutiveAbandonments = 0
	return nil
}

type memVideoRepo struct {
	repository.VideoRepository
	videos map[uuid.UUID]*model.Video
	views  int
}

func (m *memVideoRepo) FindByID(ctx context.Context, id string) (*model.Video, error) {
	video, ok := m.videos[uuid.MustParse(id)]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return video, nil
}

func (m *memVideoRepo) ActiveCandidates(ctx context.Context) ([]*model.Video, error) {
	var active []*model.Video
	for _, v := range m.videos {
		if v.Status == model.VideoStatusActive {
			active = append(active, v)
		}
	}
	return active, nil
}

func (m *memVideoRepo) IncrementEngagement(ctx context.Context, videoID uuid.UUID, liked, commented bool) error {
	m.views++
	return nil
}

type memViewLogRepo struct {
	repository.ViewLogRepository
	logs         []*model.ViewLog
	abandonments []*model.AbandonmentLog
}

func (m *memViewLogRepo) Create(ctx context.Context, log *model.ViewLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *memViewLogRepo) FindPending(ctx context.Context, userID, videoID uuid.UUID) (*model.ViewLog, error) {
	for i := len(m.logs) - 1; i >= 0; i-- {
		l := m.logs[i]
		if l.UserID == userID && l.VideoID == videoID && l.CompletedAt == nil {
			return l, nil
		}
	}
	return nil, nil
}

func (m *memViewLogRepo) Finalize(ctx context.Context, log *model.ViewLog) error {
	return nil
}

func (m *memViewLogRepo) CompletedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, l := range m.logs {
		if l.UserID == userID && l.WatchCompleted {
			ids = append(ids, l.VideoID)
		}
	}
	return ids, nil
}

func (m *memViewLogRepo) CreateAbandonment(ctx context.Context, log *model.AbandonmentLog) error {
	m.abandonments = append(m.abandonments, log)
	return nil
}

type memSessionRepo struct {
	repository.SessionRepository
	session *model.UserSession
}

func (m *memSessionRepo) Create(ctx context.Context, session *model.UserSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	m.session = session
	return nil
}

func (m *memSessionRepo) FindByID(ctx context.Context, id string) (*model.UserSession, error) {
	if m.session == nil || m.session.ID.String() != id {
		return nil, apperror.ErrNotFound
	}
	return m.session, nil
}

func (m *memSessionRepo) FindActive(ctx context.Context, userID uuid.UUID, now time.Time) (*model.UserSession, error) {
	if m.session == nil || !m.session.IsActive || !m.session.ExpiresAt.After(now) {
		return nil, nil
	}
	return m.session, nil
}

func (m *memSessionRepo) IncrementWatched(ctx context.Context, sessionID uuid.UUID) (int, error) {
	m.session.VideosWatched++
	return m.session.VideosWatched, nil
}

type watchFixture struct {
	svc      WatchService
	users    *memUserRepo
	videos   *memVideoRepo
	viewLogs *memViewLogRepo
	sessions *memSessionRepo
	video    *model.Video
	user     *model.User
}

func newWatchFixture(t *testing.T) *watchFixture {
	t.Helper()

	user := &model.User{
		ID:            uuid.New(),
		Email:         "viewer@example.com",
		Role:          model.RoleViewer,
		PointsBalance: 500,
	}

	activatedAt := time.Now().Add(-time.Hour)
	video := &model.Video{
		ID:                 uuid.New(),
		CreatorID:          uuid.New(),
		Status:             model.VideoStatusActive,
		VideoLengthSeconds: 60,
		ActivatedAt:        &activatedAt,
	}

	f := &watchFixture{
		users:    &memUserRepo{user: user},
		videos:   &memVideoRepo{videos: map[uuid.UUID]*model.Video{video.ID: video}},
		viewLogs: &memViewLogRepo{},
		sessions: &memSessionRepo{},
		video:    video,
		user:     user,
	}
	f.svc = NewWatchService(engine.DefaultConfig(), f.users, f.videos, f.viewLogs, f.sessions, nil, nil)
	return f
}

func (f *watchFixture) serve(t *testing.T) *dto.NextVideoResponse {
	t.Helper()
	next, err := f.svc.NextVideo(context.Background(), f.user.ID)
	require.NoError(t, err)
	return next
}

func TestNextVideoOpensSessionAndPendingLog(t *testing.T) {
	f := newWatchFixture(t)

	next := f.serve(t)

	assert.Equal(t, f.video.ID.String(), next.VideoID)
	require.NotNil(t, f.sessions.session)
	assert.Equal(t, f.sessions.session.ID.String(), next.SessionID)

	pending, err := f.viewLogs.FindPending(context.Background(), f.user.ID, f.video.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.False(t, pending.WatchCompleted)
}

func TestNextVideoExcludesOwnAndCompleted(t *testing.T) {
	f := newWatchFixture(t)

	// Make the only video the user's own: nothing is servable.
	f.video.CreatorID = f.user.ID
	_, err := f.svc.NextVideo(context.Background(), f.user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLogWatchCompletedAwardsPoints(t *testing.T) {
	f := newWatchFixture(t)
	f.user.ConsecutiveAbandonments = 2

	next := f.serve(t)

	result, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds:   60,
		LikeClicked:    true,
		CommentClicked: true,
		SessionID:      next.SessionID,
	})
	require.NoError(t, err)

	assert.True(t, result.WatchCompleted)
	assert.Equal(t, 38, result.PointsAwarded) // round((10+5+10) * 1.5)
	assert.Equal(t, 538, result.BalanceAfter)
	assert.Zero(t, f.user.ConsecutiveAbandonments, "completed watch resets the streak")
	assert.Equal(t, 1, f.videos.views)
	assert.Equal(t, 1, f.sessions.session.VideosWatched)
}

func TestLogWatchAbandonmentEscalates(t *testing.T) {
	f := newWatchFixture(t)

	expected := []struct {
		penalty int
		streak  int
	}{
		{15, 1},
		{30, 2},
		{60, 3},
		{120, 4},
		{120, 5}, // clamped at the table ceiling
	}

	for _, step := range expected {
		next := f.serve(t)

		result, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
			WatchSeconds: 5, // well below the completion threshold
			SessionID:    next.SessionID,
		})
		require.NoError(t, err)

		assert.False(t, result.WatchCompleted)
		assert.Zero(t, result.PointsAwarded, "abandoned views never earn points")
		assert.Equal(t, step.penalty, result.PointsPenalty)
		assert.Equal(t, step.streak, f.user.ConsecutiveAbandonments)
	}

	require.Len(t, f.viewLogs.abandonments, 5)
	assert.Equal(t, 5, f.viewLogs.abandonments[4].ConsecutiveCount)
}

func TestLogWatchPenaltyClampsBalanceAtZero(t *testing.T) {
	f := newWatchFixture(t)
	f.user.PointsBalance = 10

	next := f.serve(t)

	result, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: 0,
		SessionID:    next.SessionID,
	})
	require.NoError(t, err)

	// The engine reported the full 15-point penalty; the applied balance
	// floors at zero while the log keeps the raw delta.
	assert.Equal(t, 15, result.PointsPenalty)
	assert.Zero(t, result.BalanceAfter)
	require.NotEmpty(t, f.users.pointsLogs)
	assert.Equal(t, -15, f.users.pointsLogs[len(f.users.pointsLogs)-1].PointsChange)
}

func TestLogWatchRejectsInactiveVideo(t *testing.T) {
	f := newWatchFixture(t)

	next := f.serve(t)
	f.video.Status = model.VideoStatusCompleted

	_, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: 60,
		SessionID:    next.SessionID,
	})
	assert.ErrorIs(t, err, apperror.ErrNotEligible)
}

func TestLogWatchRejectsForeignSession(t *testing.T) {
	f := newWatchFixture(t)

	next := f.serve(t)
	f.sessions.session.UserID = uuid.New()

	_, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: 60,
		SessionID:    next.SessionID,
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestLogWatchNegativeSecondsIsInvalid(t *testing.T) {
	f := newWatchFixture(t)

	next := f.serve(t)

	_, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: -1,
		SessionID:    next.SessionID,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestLogWatchArmsCooldownAtThreshold(t *testing.T) {
	f := newWatchFixture(t)
	client, mr := newTestRedis(t)
	f.svc = NewWatchService(engine.DefaultConfig(), f.users, f.videos, f.viewLogs, f.sessions, client, nil)

	next := f.serve(t)
	f.sessions.session.VideosWatched = 9 // one short of the threshold

	result, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: 60,
		SessionID:    next.SessionID,
	})
	require.NoError(t, err)

	// The cooldown rule sees the count after the increment, not the loaded
	// snapshot.
	assert.Equal(t, 10, f.sessions.session.VideosWatched)
	assert.Equal(t, 60, result.CooldownSeconds)
	assert.True(t, mr.Exists("cooldown:user:"+f.user.ID.String()))

	_, err = f.svc.NextVideo(context.Background(), f.user.ID)
	assert.ErrorIs(t, err, apperror.ErrCooldownActive)
}

func TestLogWatchExpiredSessionAccumulatesNoCooldownState(t *testing.T) {
	f := newWatchFixture(t)

	next := f.serve(t)
	f.sessions.session.StartedAt = time.Now().Add(-time.Hour)
	f.sessions.session.ExpiresAt = time.Now().Add(-55 * time.Minute)

	result, err := f.svc.LogWatch(context.Background(), f.user.ID, f.video.ID, dto.WatchInput{
		WatchSeconds: 60,
		SessionID:    next.SessionID,
	})
	require.NoError(t, err)

	assert.True(t, result.WatchCompleted)
	assert.Zero(t, f.sessions.session.VideosWatched)
	assert.Zero(t, result.CooldownSeconds)
}
