package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	dochttp "github.com/docdex/docdex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://docs.example.com/intro</loc></url>
  <url><loc>https://docs.example.com/guide</loc></url>
  <url><loc>https://docs.example.com/guide</loc></url>
</urlset>`

func TestSitemapExpander_reads_robots_directive(t *testing.T) {
	t.Parallel()

	mux := nethttp.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/custom-sitemap.xml\n"))
	})
	mux.HandleFunc("/custom-sitemap.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	e := dochttp.NewSitemapExpander(srv.Client())
	urls, err := e.Expand(context.Background(), srv.URL, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://docs.example.com/intro",
		"https://docs.example.com/guide",
	}, urls, "duplicates removed, order preserved")
}

func TestSitemapExpander_falls_back_to_sitemap_xml(t *testing.T) {
	t.Parallel()

	mux := nethttp.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	e := dochttp.NewSitemapExpander(srv.Client())
	urls, err := e.Expand(context.Background(), srv.URL, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://docs.example.com/intro"}, urls, "limit applies")
}

func TestSitemapExpander_resolves_sitemap_indexes(t *testing.T) {
	t.Parallel()

	mux := nethttp.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>` + srv.URL + `/pages.xml</loc></sitemap>
</sitemapindex>`))
	})
	mux.HandleFunc("/pages.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	e := dochttp.NewSitemapExpander(srv.Client())
	urls, err := e.Expand(context.Background(), srv.URL, 10)
	require.NoError(t, err)

	assert.Len(t, urls, 2)
}

func TestSitemapExpander_missing_sitemap_is_empty_not_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.NotFoundHandler())
	defer srv.Close()

	e := dochttp.NewSitemapExpander(srv.Client())
	urls, err := e.Expand(context.Background(), srv.URL, 10)

	require.NoError(t, err)
	assert.Empty(t, urls)
}
