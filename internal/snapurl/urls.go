package snapurl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"snapurl_admin/internal/domain/model"
)

// LinkPage is one page of the URL management listing.
type LinkPage struct {
	Links []model.ShortLink `json:"urls"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
}

// ListLinks fetches a page of the caller's short links.
func (c *Client) ListLinks(ctx context.Context, token string, page, perPage int) (*LinkPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	path := "/api/urls"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var result LinkPage
	if err := env.DecodeData(&result); err != nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed url listing: " + err.Error()}
	}
	return &result, nil
}

// CreateLinkRequest is the create payload; Alias may be empty, in which case
// the upstream assigns one.
type CreateLinkRequest struct {
	Target    string     `json:"target"`
	Title     string     `json:"title,omitempty"`
	Alias     string     `json:"alias,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (c *Client) CreateLink(ctx context.Context, token string, req CreateLinkRequest) (*model.ShortLink, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/urls", token, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	return decodeLink(env)
}

// UpdateLinkRequest applies a partial update; nil pointers are omitted.
type UpdateLinkRequest struct {
	Target   *string `json:"target,omitempty"`
	Title    *string `json:"title,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (c *Client) UpdateLink(ctx context.Context, token, id string, req UpdateLinkRequest) (*model.ShortLink, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/urls/"+url.PathEscape(id), token, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Kind: KindValidation, Message: failureMessage(env)}
	}
	return decodeLink(env)
}

func (c *Client) DeleteLink(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/urls/"+url.PathEscape(id), token, nil)
	return err
}

func (c *Client) GetLink(ctx context.Context, token, id string) (*model.ShortLink, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/urls/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	return decodeLink(env)
}

func decodeLink(env *Envelope) (*model.ShortLink, error) {
	var payload struct {
		URL *model.ShortLink `json:"url"`
	}
	if err := env.DecodeData(&payload); err != nil || payload.URL == nil {
		return nil, &APIError{Kind: KindServer, Message: "malformed url response"}
	}
	return payload.URL, nil
}
