// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// CategoriesCacheKey stores the serialized active category tree.
const CategoriesCacheKey = "categories:active"

// CategoriesCacheTTL bounds staleness of the cached category tree.
const CategoriesCacheTTL = 10 * time.Minute
