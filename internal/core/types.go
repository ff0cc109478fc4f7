package core

// Param is one outbound query parameter. Order is preserved all the way to the
// wire, matching the upstream gateway's documented examples.
type Param struct {
	Name  string
	Value string
}

// OutboundRequest describes a single call to the upstream provider. Immutable
// once built; the credential lives only for the duration of the request.
type OutboundRequest struct {
	Endpoint string  // upstream path, e.g. "/get-profile"
	Params   []Param // ordered query parameters
	Key      string  // resolved RapidAPI credential
	Resource string  // human label used in error details ("profile", "posts", ...)
}

// Comment is the slice of an upstream comment record the analytics rollup
// reads. All other fields pass through this service untouched.
type Comment struct {
	Author CommentAuthor `json:"author"`
	Stats  CommentStats  `json:"stats"`
}

// CommentAuthor identifies a commenter by display name.
type CommentAuthor struct {
	Name string `json:"name"`
}

// CommentStats carries the numeric engagement counters of a comment.
type CommentStats struct {
	TotalReactions float64 `json:"total_reactions"`
}

// TopCommenter pairs a commenter display name with its occurrence count.
type TopCommenter struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CommentAnalytics is the aggregation returned by the analytics route.
type CommentAnalytics struct {
	TotalComments    int            `json:"total_comments"`
	UniqueCommenters int            `json:"unique_commenters"`
	AverageReactions float64        `json:"average_reactions"`
	TopCommenters    []TopCommenter `json:"top_commenters"`
}
