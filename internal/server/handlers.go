package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-feed/internal/domain"
	apperrors "github.com/orgball2608/social-feed/pkg/errors"
)

const (
	instagramFailedMessage  = "Failed to fetch Instagram posts"
	linkedInFailedMessage   = "Failed to fetch LinkedIn posts"
	linkedInExpiredMessage  = "LinkedIn credentials expired and could not be refreshed. Manual reauthorization required."
	linkedInRejectedMessage = "LinkedIn rejected the refreshed access token. Manual reauthorization required."
)

type postsResponse struct {
	Posts   []domain.Post `json:"posts"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) getSocialFeed(c *gin.Context) {
	result, err := s.feed.Aggregate(c.Request.Context())
	if err != nil {
		s.logger.Error("Feed aggregation failed", "error", err)
		result = domain.Feed{
			Posts: []domain.Post{},
			Sources: map[domain.Platform]int{
				domain.PlatformInstagram: 0,
				domain.PlatformLinkedIn:  0,
			},
		}
	}
	if result.Posts == nil {
		result.Posts = []domain.Post{}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getInstagram(c *gin.Context) {
	result, err := s.instagram.GetRecentPosts(c.Request.Context())
	if err != nil {
		s.logger.Error("Instagram fetch failed", "status", apperrors.GetStatus(err), "error", err)
		c.JSON(http.StatusInternalServerError, postsResponse{Posts: []domain.Post{}, Error: instagramFailedMessage})
		return
	}
	c.JSON(http.StatusOK, toPostsResponse(result))
}

func (s *Server) getLinkedIn(c *gin.Context) {
	result, err := s.linkedin.GetOrganizationPosts(c.Request.Context())
	if err != nil {
		msg := linkedInFailedMessage
		switch {
		case apperrors.IsRefreshFailed(err):
			msg = linkedInExpiredMessage
		case apperrors.IsUnauthorized(err):
			msg = linkedInRejectedMessage
		}
		s.logger.Error("LinkedIn fetch failed", "status", apperrors.GetStatus(err), "error", err)
		c.JSON(http.StatusInternalServerError, postsResponse{Posts: []domain.Post{}, Error: msg})
		return
	}
	c.JSON(http.StatusOK, toPostsResponse(result))
}

func (s *Server) refreshLinkedIn(c *gin.Context) {
	pair, err := s.linkedin.RefreshAccessToken(c.Request.Context())
	if err != nil {
		s.logger.Error("Manual token refresh failed", "operator", c.GetString("operator"), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": linkedInExpiredMessage})
		return
	}

	s.logger.Info("LinkedIn token refreshed manually", "operator", c.GetString("operator"))
	c.JSON(http.StatusOK, refreshResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(pair.ExpiresIn(time.Now()).Seconds()),
	})
}

func toPostsResponse(result domain.FetchResult) postsResponse {
	posts := result.Posts
	if posts == nil {
		posts = []domain.Post{}
	}
	return postsResponse{Posts: posts, Message: result.Message}
}
