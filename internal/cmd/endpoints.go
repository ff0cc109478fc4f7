package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/config"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/linkedin"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/output"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the routes this server exposes",
	Long:  "List every HTTP route the server exposes, with accepted parameters and the upstream endpoint each one forwards to.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			return err
		}

		catalog := routeCatalog(cfg)

		outPath, outDir, err := resolveOutputTargets(cmd)
		if err != nil {
			return err
		}

		if outDir != "" {
			outDir, err = ensureOutDir(outDir)
			if err != nil {
				return err
			}
			outPath = filepath.Join(outDir, fmt.Sprintf("%s.endpoints.%s", sanitizeFilename(appName), outputExtension(format)))
		}

		sink, err := openSink(outPath)
		if err != nil {
			return err
		}
		defer func() { _ = sink.close() }()

		rendered, err := output.NewFormatter(format).FormatCatalog(catalog)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(sink.writer, rendered)
		return err
	},
}

// routeCatalog describes the served routes. Kept next to the command rather
// than derived from the router so the notes column can say what the handler
// actually does to each parameter.
func routeCatalog(cfg *config.Config) *output.Catalog {
	catalog := &output.Catalog{
		Service:      appName,
		UpstreamBase: cfg.Upstream.BaseURL,
		Routes: []output.Route{
			{
				Method: "GET",
				Path:   "/",
				Notes:  "liveness status, no upstream call",
			},
			{
				Method:   "GET",
				Path:     "/api/profile",
				Params:   []string{"username"},
				Upstream: linkedin.EndpointProfile,
			},
			{
				Method:   "GET",
				Path:     "/api/posts",
				Params:   []string{"username", "page_number"},
				Upstream: linkedin.EndpointPosts,
				Notes:    "page_number defaults to 1",
			},
			{
				Method:   "GET",
				Path:     "/api/comments",
				Params:   []string{"post_url", "page_number", "sort_order"},
				Upstream: linkedin.EndpointComments,
				Notes:    "post_url normalized, sort_order defaults to Most relevant",
			},
			{
				Method:   "GET",
				Path:     "/api/company",
				Params:   []string{"identifier"},
				Upstream: linkedin.EndpointCompany,
			},
			{
				Method:   "GET",
				Path:     "/api/analytics/comments",
				Params:   []string{"post_url"},
				Upstream: linkedin.EndpointComments,
				Notes:    "aggregates first page of comments",
			},
			{
				Method:   "POST",
				Path:     "/api/post/reactions",
				Params:   []string{"post_url", "page_number", "reaction_type"},
				Upstream: linkedin.EndpointReactions,
				Notes:    "JSON body, post_url forwarded verbatim",
			},
			{
				Method: "GET",
				Path:   "/health",
				Notes:  "aggregate health report",
			},
			{
				Method: "GET",
				Path:   "/version",
				Notes:  "build and dependency versions",
			},
			{
				Method: "GET",
				Path:   "/metrics",
				Notes:  "Prometheus metrics proxy",
			},
		},
	}
	return catalog
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.Flags().String("output-format", "table", "Output format: table, json, markdown")
	endpointsCmd.Flags().String("out", "", "Write output to a file (default stdout)")
	endpointsCmd.Flags().String("out-dir", "", "Write output to a directory")
}
