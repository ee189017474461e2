package docdex

import "net/url"

// Default job policy values applied by Job.Normalize.
const (
	DefaultMaxDepth       = 2
	DefaultMaxPages       = 50
	DefaultConcurrency    = 4
	DefaultUserAgent      = "docdex/1.0 (+https://github.com/docdex/docdex)"
	DefaultTokensPerChunk = 400
	DefaultOverlapTokens  = 50
	DefaultMinChunkTokens = 40
)

// Job describes one crawl run. At most one job is active per scheduler;
// starting a second job is rejected with ECONFLICT, not queued.
type Job struct {
	ID             string   `json:"id"`
	SeedURLs       []string `json:"seedUrls"`
	MaxDepth       int      `json:"maxDepth"`
	MaxPages       int      `json:"maxPages"`
	FollowExternal bool     `json:"followExternal"`

	// AllowedDomains restricts link following when FollowExternal is false.
	// Derived from the seed URL hosts if unset.
	AllowedDomains []string `json:"allowedDomains,omitempty"`

	Concurrency int    `json:"concurrency"`
	UserAgent   string `json:"userAgent"`

	// Chunking parameters, in whitespace tokens. OverlapTokens of 0 means
	// unset and takes the default; a negative value requests no overlap.
	TokensPerChunk int `json:"tokensPerChunk"`
	OverlapTokens  int `json:"overlapTokens"`
	MinChunkTokens int `json:"minChunkTokens"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if len(j.SeedURLs) == 0 {
		return Errorf(EINVALID, "job requires at least one seed URL")
	}
	for _, seed := range j.SeedURLs {
		u, err := url.Parse(seed)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return Errorf(EINVALID, "invalid seed URL %q", seed)
		}
	}
	if j.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be >= 0")
	}
	if j.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be >= 1")
	}
	return nil
}

// Normalize fills zero-valued fields with defaults and derives the allowed
// domain set from the seed URLs when unset. Seeds must already be validated.
func (j *Job) Normalize() {
	if j.MaxPages == 0 {
		j.MaxPages = DefaultMaxPages
	}
	if j.Concurrency <= 0 {
		j.Concurrency = DefaultConcurrency
	}
	if j.UserAgent == "" {
		j.UserAgent = DefaultUserAgent
	}
	if j.TokensPerChunk <= 0 {
		j.TokensPerChunk = DefaultTokensPerChunk
	}
	if j.OverlapTokens == 0 {
		j.OverlapTokens = DefaultOverlapTokens
	} else if j.OverlapTokens < 0 {
		j.OverlapTokens = 0
	}
	if j.MinChunkTokens <= 0 {
		j.MinChunkTokens = DefaultMinChunkTokens
	}
	if len(j.AllowedDomains) == 0 {
		seen := make(map[string]bool)
		for _, seed := range j.SeedURLs {
			if u, err := url.Parse(seed); err == nil && u.Host != "" && !seen[u.Host] {
				seen[u.Host] = true
				j.AllowedDomains = append(j.AllowedDomains, u.Host)
			}
		}
	}
}
