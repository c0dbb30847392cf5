package reauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	mock_credential "github.com/orgball2608/social-feed/internal/repositories/credential/mocks"
	mock_telegram "github.com/orgball2608/social-feed/internal/telegram/mocks"
	"github.com/orgball2608/social-feed/internal/token"
	mock_token "github.com/orgball2608/social-feed/internal/token/mocks"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
	"github.com/orgball2608/social-feed/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type deps struct {
	credentials *mock_credential.MockRepository
	refresher   *mock_token.MockRefresher
	telegram    *mock_telegram.MockClient
}

func newCoordinator(t *testing.T) (*Coordinator, deps) {
	ctrl := gomock.NewController(t)
	d := deps{
		credentials: mock_credential.NewMockRepository(ctrl),
		refresher:   mock_token.NewMockRefresher(ctrl),
		telegram:    mock_telegram.NewMockClient(ctrl),
	}
	c := New(Opts{
		Credentials: d.credentials,
		Refresher:   d.refresher,
		Telegram:    d.telegram,
		Logger:      logger.New(logger.Opts{Env: "test", Output: io.Discard}),
	})
	return c, d
}

// scripted answers each call with the next status and records the tokens it saw. When saved
// is set, it also records whether the store had been written before each call.
type scripted struct {
	statuses   []int
	posts      []domain.Post
	tokens     []string
	saved      *bool
	savedFirst []bool
}

func (s *scripted) fetch(_ context.Context, accessToken string) (domain.FetchResult, error) {
	s.tokens = append(s.tokens, accessToken)
	if s.saved != nil {
		s.savedFirst = append(s.savedFirst, *s.saved)
	}
	status := s.statuses[len(s.tokens)-1]
	if status == http.StatusOK {
		return domain.FetchResult{Posts: s.posts, Status: status}, nil
	}
	return domain.FetchResult{Posts: []domain.Post{}, Status: status}, nil
}

func samplePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{
			ID:        string(rune('a' + i)),
			Platform:  domain.PlatformLinkedIn,
			ImageURL:  "https://media.example/" + string(rune('a'+i)),
			Timestamp: time.Date(2024, 5, 1+i, 9, 0, 0, 0, time.UTC),
		}
	}
	return posts
}

func TestFetch_SuccessFirstTry(t *testing.T) {
	c, _ := newCoordinator(t)
	fn := &scripted{statuses: []int{http.StatusOK}, posts: samplePosts(2)}

	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A"}, fn.fetch)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, []State{StateFetching, StateSuccess}, out.Transitions)
	assert.Equal(t, 1, out.Attempts)
	assert.False(t, out.Refreshed)
	assert.Len(t, out.Result.Posts, 2)
}

func TestFetch_RefreshesOnUnauthorized(t *testing.T) {
	c, d := newCoordinator(t)
	expires := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	refreshed := domain.CredentialPair{AccessToken: "B", RefreshToken: "R2", ExpiresAt: &expires}

	saved := false
	gomock.InOrder(
		d.refresher.EXPECT().Refresh(gomock.Any(), "R").Return(refreshed, nil),
		d.credentials.EXPECT().Save(gomock.Any(), refreshed).
			DoAndReturn(func(context.Context, domain.CredentialPair) error {
				saved = true
				return nil
			}),
	)

	fn := &scripted{statuses: []int{http.StatusUnauthorized, http.StatusOK}, posts: samplePosts(3), saved: &saved}
	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A", RefreshToken: "R"}, fn.fetch)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true}, fn.savedFirst, "refreshed pair is stored before the retry")
	assert.Equal(t, []State{
		StateFetching, StateUnauthorized, StateRefreshingToken, StateRefreshSucceeded, StateRetrying, StateSuccess,
	}, out.Transitions)

	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, 2, out.Attempts)
	assert.True(t, out.Refreshed)
	assert.Equal(t, []string{"A", "B"}, fn.tokens)
	assert.Len(t, out.Result.Posts, 3)
	assert.Equal(t, "R2", out.Credentials.RefreshToken)
}

func TestFetch_RetriesOnlyOnce(t *testing.T) {
	c, d := newCoordinator(t)
	d.refresher.EXPECT().Refresh(gomock.Any(), "R").
		Return(domain.CredentialPair{AccessToken: "B", RefreshToken: "R"}, nil).Times(1)
	d.credentials.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	fn := &scripted{statuses: []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusOK}}
	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A", RefreshToken: "R"}, fn.fetch)

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, 2, out.Attempts)
	assert.Len(t, fn.tokens, 2)
}

func TestFetch_RefreshFailure(t *testing.T) {
	c, d := newCoordinator(t)
	d.refresher.EXPECT().Refresh(gomock.Any(), "R").
		Return(domain.CredentialPair{}, errors.Join(token.ErrRefreshFailed, errors.New("invalid_grant")))
	d.telegram.EXPECT().SendMessageToDefaultChannel(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.Contains(msg, "Manual reauthorization required"))
	})

	fn := &scripted{statuses: []int{http.StatusUnauthorized}}
	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A", RefreshToken: "R"}, fn.fetch)

	require.Error(t, err)
	assert.True(t, apperrors.IsRefreshFailed(err))
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, []State{
		StateFetching, StateUnauthorized, StateRefreshingToken, StateRefreshFailed, StateFailed,
	}, out.Transitions)
	assert.Equal(t, 1, out.Attempts)
	assert.False(t, out.Refreshed)
}

func TestFetch_OtherStatusNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c, _ := newCoordinator(t)
			fn := &scripted{statuses: []int{status}}

			out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A", RefreshToken: "R"}, fn.fetch)
			require.Error(t, err)
			assert.Equal(t, status, apperrors.GetStatus(err))
			assert.Equal(t, StateOtherError, out.State)
			assert.Equal(t, 1, out.Attempts)
		})
	}
}

func TestFetch_TransportErrorNotRetried(t *testing.T) {
	c, _ := newCoordinator(t)
	calls := 0
	fetch := func(context.Context, string) (domain.FetchResult, error) {
		calls++
		return domain.FetchResult{Posts: []domain.Post{}}, errors.New("connection reset")
	}

	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A"}, fetch)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateOtherError, out.State)
}

func TestFetch_ReadOnlyStoreStillRetries(t *testing.T) {
	c, d := newCoordinator(t)
	d.refresher.EXPECT().Refresh(gomock.Any(), "R").Return(domain.CredentialPair{AccessToken: "B", RefreshToken: "R"}, nil)
	d.credentials.EXPECT().Save(gomock.Any(), gomock.Any()).Return(fmt.Errorf("static credentials: %w", apperrors.ErrReadOnly))

	fn := &scripted{statuses: []int{http.StatusUnauthorized, http.StatusOK}, posts: samplePosts(1)}
	out, err := c.Fetch(context.Background(), domain.CredentialPair{AccessToken: "A", RefreshToken: "R"}, fn.fetch)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, fn.tokens)
	assert.Equal(t, StateSuccess, out.State)
}
