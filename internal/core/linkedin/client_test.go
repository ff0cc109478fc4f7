package linkedin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientNewRequestDefaults(t *testing.T) {
	client := &Client{}

	req, err := client.NewRequest(context.Background(), ProfileRequest("satyanadella", "secret"))
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, DefaultBaseURL+"/get-profile?username=satyanadella", req.URL.String())
	require.Equal(t, DefaultHost, req.Header.Get("x-rapidapi-host"))
	require.Equal(t, "secret", req.Header.Get(KeyHeader))
}

func TestClientNewRequestCustomBase(t *testing.T) {
	client := &Client{BaseURL: "http://127.0.0.1:9999", Host: "stub.example"}

	req, err := client.NewRequest(context.Background(), CompanyRequest("microsoft", "secret"))
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:9999/get-company-details?identifier=microsoft", req.URL.String())
	require.Equal(t, "stub.example", req.Header.Get("x-rapidapi-host"))
}

func TestClientNewRequestKeepsParamOrder(t *testing.T) {
	client := &Client{}

	req, err := client.NewRequest(context.Background(),
		CommentsRequest("https://www.linkedin.com/posts/abc", 1, "Most relevant", "secret"))
	require.NoError(t, err)

	require.Equal(t,
		"post_url=https%3A%2F%2Fwww.linkedin.com%2Fposts%2Fabc&page_number=1&sort_order=Most+relevant",
		req.URL.RawQuery)
}

func TestPostsRequestConvertsPageNumber(t *testing.T) {
	out := PostsRequest("satyanadella", 3, "secret")

	require.Equal(t, EndpointPosts, out.Endpoint)
	require.Equal(t, "page_number", out.Params[1].Name)
	require.Equal(t, "3", out.Params[1].Value)
}

func TestReactionsRequestKeepsStringValues(t *testing.T) {
	out := ReactionsRequest("https://www.linkedin.com/posts/abc", "1", "ALL", "secret")

	require.Equal(t, EndpointReactions, out.Endpoint)
	require.Equal(t, ResourceReactions, out.Resource)
	require.Equal(t, []string{"post_url", "page_number", "reaction_type"},
		[]string{out.Params[0].Name, out.Params[1].Name, out.Params[2].Name})
	require.Equal(t, "1", out.Params[1].Value)
	require.Equal(t, "ALL", out.Params[2].Value)
}
