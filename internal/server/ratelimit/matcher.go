package ratelimit

import "strings"

// unlimited marks an endpoint exempt from limiting.
var unlimited = EndpointConfig{}

// MatchEndpoint resolves the endpoint configuration for a path and method.
// Exact path matches win over prefix matches; configs whose path ends in "/"
// match any longer path under that prefix (so "/profile/" covers
// "/profile/skills/{id}"). Returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if prefixMatch == nil && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			prefixMatch = cfg
		}
	}
	return prefixMatch
}
