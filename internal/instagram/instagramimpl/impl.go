package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/internal/instagram"
	"github.com/orgball2608/social-feed/pkg/config"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

const mediaFields = "id,media_url,permalink,caption,media_type,timestamp"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type InstaImpl struct {
	client      *http.Client
	baseURL     string
	accessToken string
	logger      logger.Logger
}

func New(opts Opts) *InstaImpl {
	return &InstaImpl{
		client:      &http.Client{Timeout: opts.Config.HTTP.ClientTimeout},
		baseURL:     strings.TrimRight(opts.Config.Instagram.ApiUrl, "/"),
		accessToken: opts.Config.Instagram.AccessToken,
		logger:      opts.Logger.WithComponent("Instagram"),
	}
}

var _ instagram.Client = (*InstaImpl)(nil)

type mediaResponse struct {
	Data []mediaItem `json:"data"`
}

func (ig *InstaImpl) GetRecentPosts(ctx context.Context) (domain.FetchResult, error) {
	if ig.accessToken == "" {
		return domain.FetchResult{Posts: []domain.Post{}, Message: instagram.NotConfiguredMessage}, nil
	}

	query := url.Values{}
	query.Set("fields", mediaFields)
	query.Set("limit", fmt.Sprint(instagram.RequestLimit))
	query.Set("access_token", ig.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ig.baseURL+"/me/media?"+query.Encode(), nil)
	if err != nil {
		return domain.FetchResult{Posts: []domain.Post{}}, fmt.Errorf("failed to build media request: %w", err)
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		return domain.FetchResult{Posts: []domain.Post{}}, fmt.Errorf("failed to fetch instagram media: %w", err)
	}
	defer resp.Body.Close()

	result := domain.FetchResult{Posts: []domain.Post{}, Status: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ig.logger.Error("Instagram API error", "status", resp.StatusCode)
		return result, apperrors.NewPlatformError(string(domain.PlatformInstagram), resp.StatusCode)
	}

	var body mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return result, fmt.Errorf("failed to decode instagram media: %w", err)
	}

	result.Posts = normalize(body.Data, instagram.MaxPosts)
	ig.logger.Debug("Fetched instagram media", "received", len(body.Data), "kept", len(result.Posts))
	return result, nil
}
