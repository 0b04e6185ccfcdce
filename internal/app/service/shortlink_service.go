package service

import (
	"context"
	"net/url"

	"snapurl_admin/internal/common"
	"snapurl_admin/internal/domain/model"
	"snapurl_admin/internal/snapurl"

	"github.com/gosimple/slug"
)

// ShortLinkService backs the URL management screens. All data lives
// upstream; this layer adds input checks and alias derivation.
type ShortLinkService struct {
	client *snapurl.Client
}

func NewShortLinkService(client *snapurl.Client) *ShortLinkService {
	return &ShortLinkService{client: client}
}

func (s *ShortLinkService) List(ctx context.Context, token string, page, perPage int) (*snapurl.LinkPage, error) {
	return s.client.ListLinks(ctx, token, page, perPage)
}

func (s *ShortLinkService) Get(ctx context.Context, token, id string) (*model.ShortLink, error) {
	if id == "" {
		return nil, common.ErrBadRequest
	}
	return s.client.GetLink(ctx, token, id)
}

// Create registers a new short link. An empty alias is derived from the
// title so hand-written links get readable slugs by default.
func (s *ShortLinkService) Create(ctx context.Context, token string, req snapurl.CreateLinkRequest) (*model.ShortLink, error) {
	target, err := url.Parse(req.Target)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, common.Errorf("target must be an absolute URL: %w", common.ErrValidation)
	}
	if req.Alias == "" && req.Title != "" {
		req.Alias = slug.Make(req.Title)
	}
	return s.client.CreateLink(ctx, token, req)
}

func (s *ShortLinkService) Update(ctx context.Context, token, id string, req snapurl.UpdateLinkRequest) (*model.ShortLink, error) {
	if id == "" {
		return nil, common.ErrBadRequest
	}
	if req.Target != nil {
		target, err := url.Parse(*req.Target)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, common.Errorf("target must be an absolute URL: %w", common.ErrValidation)
		}
	}
	return s.client.UpdateLink(ctx, token, id, req)
}

func (s *ShortLinkService) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return common.ErrBadRequest
	}
	return s.client.DeleteLink(ctx, token, id)
}
