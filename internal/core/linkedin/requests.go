package linkedin

import (
	"strconv"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core"
)

// Upstream endpoint paths on the RapidAPI gateway.
const (
	EndpointProfile   = "/get-profile"
	EndpointPosts     = "/get-profile-posts"
	EndpointComments  = "/get-post-comments"
	EndpointCompany   = "/get-company-details"
	EndpointReactions = "/get-post-reactions"
)

// Resource labels used in caller-facing error details.
const (
	ResourceProfile   = "profile"
	ResourcePosts     = "posts"
	ResourceComments  = "comments"
	ResourceCompany   = "company"
	ResourceReactions = "reactions"
)

// ProfileRequest fetches a member profile by public username.
func ProfileRequest(username, key string) core.OutboundRequest {
	return core.OutboundRequest{
		Endpoint: EndpointProfile,
		Params: []core.Param{
			{Name: "username", Value: username},
		},
		Key:      key,
		Resource: ResourceProfile,
	}
}

// PostsRequest fetches one page of a member's posts.
func PostsRequest(username string, pageNumber int, key string) core.OutboundRequest {
	return core.OutboundRequest{
		Endpoint: EndpointPosts,
		Params: []core.Param{
			{Name: "username", Value: username},
			{Name: "page_number", Value: strconv.Itoa(pageNumber)},
		},
		Key:      key,
		Resource: ResourcePosts,
	}
}

// CommentsRequest fetches one page of comments under a post. Callers are
// expected to normalize postURL first so tracking parameters never reach
// the provider.
func CommentsRequest(postURL string, pageNumber int, sortOrder, key string) core.OutboundRequest {
	return core.OutboundRequest{
		Endpoint: EndpointComments,
		Params: []core.Param{
			{Name: "post_url", Value: postURL},
			{Name: "page_number", Value: strconv.Itoa(pageNumber)},
			{Name: "sort_order", Value: sortOrder},
		},
		Key:      key,
		Resource: ResourceComments,
	}
}

// CompanyRequest fetches company details by identifier (vanity name or ID).
func CompanyRequest(identifier, key string) core.OutboundRequest {
	return core.OutboundRequest{
		Endpoint: EndpointCompany,
		Params: []core.Param{
			{Name: "identifier", Value: identifier},
		},
		Key:      key,
		Resource: ResourceCompany,
	}
}

// ReactionsRequest fetches reactions on a post. pageNumber and reactionType
// arrive as strings because the public route accepts them as strings in the
// JSON body; they are forwarded verbatim rather than coerced.
func ReactionsRequest(postURL, pageNumber, reactionType, key string) core.OutboundRequest {
	return core.OutboundRequest{
		Endpoint: EndpointReactions,
		Params: []core.Param{
			{Name: "post_url", Value: postURL},
			{Name: "page_number", Value: pageNumber},
			{Name: "reaction_type", Value: reactionType},
		},
		Key:      key,
		Resource: ResourceReactions,
	}
}
