package linkedinimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/linkedin"
	"github.com/orgball2608/social-feed/internal/reauth"
	"github.com/orgball2608/social-feed/internal/repositories/credential"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

const restliProtocolVersion = "2.0.0"

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Credentials credential.Repository
	Coordinator *reauth.Coordinator
}

type LinkedInImpl struct {
	client         *http.Client
	baseURL        string
	apiVersion     string
	organizationID string
	credentials    credential.Repository
	coordinator    *reauth.Coordinator
	logger         logger.Logger
}

func New(opts Opts) *LinkedInImpl {
	return &LinkedInImpl{
		client:         &http.Client{Timeout: opts.Config.HTTP.ClientTimeout},
		baseURL:        strings.TrimRight(opts.Config.LinkedIn.ApiUrl, "/"),
		apiVersion:     opts.Config.LinkedIn.ApiVersion,
		organizationID: opts.Config.LinkedIn.OrganizationID,
		credentials:    opts.Credentials,
		coordinator:    opts.Coordinator,
		logger:         opts.Logger.WithComponent("LinkedIn"),
	}
}

var _ linkedin.Client = (*LinkedInImpl)(nil)

func (li *LinkedInImpl) GetOrganizationPosts(ctx context.Context) (domain.FetchResult, error) {
	creds, err := li.credentials.Get(ctx)
	if err != nil {
		return domain.FetchResult{Posts: []domain.Post{}}, fmt.Errorf("failed to load linkedin credentials: %w", err)
	}

	if creds.AccessToken == "" || li.organizationID == "" {
		return domain.FetchResult{Posts: []domain.Post{}, Message: linkedin.NotConfiguredMessage}, nil
	}

	outcome, err := li.coordinator.Fetch(ctx, *creds, li.fetchPosts)
	if err != nil {
		li.logger.Error("LinkedIn fetch failed",
			"state", outcome.State, "attempts", outcome.Attempts, "error", err)
		return domain.FetchResult{Posts: []domain.Post{}, Status: outcome.Result.Status}, err
	}

	if outcome.Refreshed {
		li.logger.Info("LinkedIn fetch succeeded after token refresh", "attempts", outcome.Attempts)
	}
	return outcome.Result, nil
}

func (li *LinkedInImpl) RefreshAccessToken(ctx context.Context) (domain.CredentialPair, error) {
	creds, err := li.credentials.Get(ctx)
	if err != nil {
		return domain.CredentialPair{}, fmt.Errorf("failed to load linkedin credentials: %w", err)
	}
	return li.coordinator.Refresh(ctx, *creds)
}

// fetchPosts performs one posts call. A non-2xx answer is reported through Status with a nil
// error so the coordinator can decide whether to refresh.
func (li *LinkedInImpl) fetchPosts(ctx context.Context, accessToken string) (domain.FetchResult, error) {
	query := url.Values{}
	query.Set("author", "urn:li:organization:"+li.organizationID)
	query.Set("q", "author")
	query.Set("count", fmt.Sprint(linkedin.RequestLimit))

	req, err := li.newRequest(ctx, accessToken, li.baseURL+"/rest/posts?"+query.Encode())
	if err != nil {
		return domain.FetchResult{Posts: []domain.Post{}}, fmt.Errorf("failed to build posts request: %w", err)
	}

	resp, err := li.client.Do(req)
	if err != nil {
		return domain.FetchResult{Posts: []domain.Post{}}, fmt.Errorf("failed to fetch linkedin posts: %w", err)
	}
	defer resp.Body.Close()

	result := domain.FetchResult{Posts: []domain.Post{}, Status: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		li.logger.Warn("LinkedIn API error", "status", resp.StatusCode, "body", string(body))
		return result, nil
	}

	var body postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return result, fmt.Errorf("failed to decode linkedin posts: %w", err)
	}

	for _, post := range body.Elements {
		id := mediaID(post)
		if id == "" {
			continue
		}

		downloadURL, err := li.resolveImage(ctx, accessToken, id)
		if err != nil {
			li.logger.Debug("Skipping post with unresolved image", "post", post.ID, "error", err)
			continue
		}

		p, ok := toPost(post, downloadURL)
		if !ok {
			continue
		}
		result.Posts = append(result.Posts, p)
		if len(result.Posts) >= linkedin.MaxPosts {
			break
		}
	}

	li.logger.Debug("Fetched linkedin posts", "received", len(body.Elements), "kept", len(result.Posts))
	return result, nil
}

func (li *LinkedInImpl) resolveImage(ctx context.Context, accessToken, id string) (string, error) {
	req, err := li.newRequest(ctx, accessToken, li.baseURL+"/rest/images/"+url.QueryEscape(id))
	if err != nil {
		return "", err
	}

	resp, err := li.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("image lookup returned %d", resp.StatusCode)
	}

	var body imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.DownloadURL == "" {
		return "", fmt.Errorf("image %s has no download url", id)
	}
	return body.DownloadURL, nil
}

func (li *LinkedInImpl) newRequest(ctx context.Context, accessToken, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("LinkedIn-Version", li.apiVersion)
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)
	return req, nil
}
