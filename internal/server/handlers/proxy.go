package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/linkedin"
	apperrors "github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/errors"
)

// Defaults applied when the caller omits optional parameters. Query routes
// take integer page numbers; the reactions body keeps string values because
// the upstream endpoint expects them as strings there.
const (
	defaultPageNumber   = 1
	defaultSortOrder    = "Most relevant"
	defaultReactionPage = "1"
	defaultReactionType = "ALL"
)

// StatusMessage is the liveness payload served on the root route.
const StatusMessage = "✅ LinkedIn Scraper Backend running successfully"

// Dispatcher issues an outbound request and returns the upstream payload.
type Dispatcher interface {
	Do(ctx context.Context, out core.OutboundRequest) (json.RawMessage, error)
}

// Proxy serves the /api routes by translating inbound requests into outbound
// RapidAPI calls. DefaultKey supplies the configured fallback credential used
// when the caller does not send one in the request header.
type Proxy struct {
	Relay      Dispatcher
	DefaultKey func() string
}

// Profile handles GET /api/profile.
func (p *Proxy) Profile(w http.ResponseWriter, r *http.Request) {
	username, ok := requireQuery(w, r, "username")
	if !ok {
		return
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}
	p.forward(w, r, linkedin.ProfileRequest(username, key))
}

// Posts handles GET /api/posts.
func (p *Proxy) Posts(w http.ResponseWriter, r *http.Request) {
	username, ok := requireQuery(w, r, "username")
	if !ok {
		return
	}
	page, ok := queryPage(w, r)
	if !ok {
		return
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}
	p.forward(w, r, linkedin.PostsRequest(username, page, key))
}

// Comments handles GET /api/comments. The post URL is normalized before it is
// sent upstream so tracking query strings do not break upstream lookups.
func (p *Proxy) Comments(w http.ResponseWriter, r *http.Request) {
	postURL, ok := requireQuery(w, r, "post_url")
	if !ok {
		return
	}
	page, ok := queryPage(w, r)
	if !ok {
		return
	}
	sortOrder := strings.TrimSpace(r.URL.Query().Get("sort_order"))
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}
	p.forward(w, r, linkedin.CommentsRequest(linkedin.NormalizePostURL(postURL), page, sortOrder, key))
}

// Company handles GET /api/company.
func (p *Proxy) Company(w http.ResponseWriter, r *http.Request) {
	identifier, ok := requireQuery(w, r, "identifier")
	if !ok {
		return
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}
	p.forward(w, r, linkedin.CompanyRequest(identifier, key))
}

type reactionsRequest struct {
	PostURL      string `json:"post_url"`
	PageNumber   string `json:"page_number"`
	ReactionType string `json:"reaction_type"`
}

// Reactions handles POST /api/post/reactions. The upstream endpoint takes its
// page number and reaction type as strings, so the body defaults stay strings
// and the post URL passes through without normalization.
func (p *Proxy) Reactions(w http.ResponseWriter, r *http.Request) {
	var body reactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError("request body must be a JSON object"))
		return
	}
	if strings.TrimSpace(body.PostURL) == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("post_url is required"))
		return
	}
	if body.PageNumber == "" {
		body.PageNumber = defaultReactionPage
	}
	if body.ReactionType == "" {
		body.ReactionType = defaultReactionType
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}
	p.forward(w, r, linkedin.ReactionsRequest(body.PostURL, body.PageNumber, body.ReactionType, key))
}

// CommentAnalytics handles GET /api/analytics/comments. It fetches the first
// page of comments for the post and returns the aggregated summary instead of
// the raw upstream payload.
func (p *Proxy) CommentAnalytics(w http.ResponseWriter, r *http.Request) {
	postURL, ok := requireQuery(w, r, "post_url")
	if !ok {
		return
	}
	key, ok := p.resolveKey(w, r)
	if !ok {
		return
	}

	out := linkedin.CommentsRequest(linkedin.NormalizePostURL(postURL), defaultPageNumber, defaultSortOrder, key)
	payload, ok := p.dispatch(w, r, out)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, core.AggregateComments(core.ExtractComments(payload)))
}

// Status serves the root liveness route. It never touches the upstream.
func Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": StatusMessage})
}

// resolveKey picks the caller's header credential over the configured default
// and rejects the request when neither is present.
func (p *Proxy) resolveKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := linkedin.ResolveKey(r.Header.Get(linkedin.KeyHeader), p.defaultKey())
	if err != nil {
		respondWithError(w, r, apperrors.NewMissingCredentialError(linkedin.MissingKeyDetail))
		return "", false
	}
	return key, true
}

func (p *Proxy) defaultKey() string {
	if p.DefaultKey == nil {
		return ""
	}
	return p.DefaultKey()
}

// dispatch runs the outbound call and writes the mapped error envelope on
// failure. The boolean reports whether the caller still owes a response.
func (p *Proxy) dispatch(w http.ResponseWriter, r *http.Request, out core.OutboundRequest) (json.RawMessage, bool) {
	if p.Relay == nil {
		respondWithError(w, r, apperrors.NewInternalError("dispatcher is not configured"))
		return nil, false
	}
	payload, err := p.Relay.Do(r.Context(), out)
	if err != nil {
		respondWithError(w, r, relayFailureEnvelope(err))
		return nil, false
	}
	return payload, true
}

func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, out core.OutboundRequest) {
	payload, ok := p.dispatch(w, r, out)
	if !ok {
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

func requireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError(name+" query parameter is required"))
		return "", false
	}
	return value, true
}

func queryPage(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("page_number"))
	if raw == "" {
		return defaultPageNumber, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		respondWithError(w, r, apperrors.NewInvalidInputError("page_number must be a positive integer"))
		return 0, false
	}
	return page, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload) // nolint:errcheck // headers already sent
}

func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload) // nolint:errcheck // headers already sent
}
