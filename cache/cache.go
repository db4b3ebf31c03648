package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// File-backed HTML cache for rendered blog pages. Entries live under
// cache/blog and expire after MaxAge; project and studio pages are
// never cached.

// MaxAge is the shared cache lifetime for blog pages.
const MaxAge = time.Hour

// IndexSlug keys the cached blog index page.
const IndexSlug = "index"

// GetCachePath returns the cache file path for a blog page.
func GetCachePath(slug string) string {
	hash := generateHash(slug)
	shortHash := hash[:16]
	return filepath.Join("cache", "blog", fmt.Sprintf("%s_%s.html", slug, shortHash))
}

// generateHash generates an xxHash hash for the given string
func generateHash(s string) string {
	hash := xxhash.Sum64String(s)
	return fmt.Sprintf("%016x", hash)
}

// EnsureCacheDir ensures the cache directory exists
func EnsureCacheDir() error {
	return os.MkdirAll(filepath.Join("cache", "blog"), 0755)
}

// WriteCache writes HTML content to a cache file
func WriteCache(slug, html string) error {
	if err := EnsureCacheDir(); err != nil {
		return err
	}
	return os.WriteFile(GetCachePath(slug), []byte(html), 0644)
}

// ReadCache reads HTML content from a cache file if it exists and is
// not expired
func ReadCache(slug string, maxAge time.Duration) (string, bool) {
	cachePath := GetCachePath(slug)

	info, err := os.Stat(cachePath)
	if err != nil {
		return "", false
	}

	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return "", false
	}

	return string(content), true
}

// ClearPage removes the cache entry for one blog page.
func ClearPage(slug string) error {
	err := os.Remove(GetCachePath(slug))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearPost removes a post's cached page together with the index page,
// which lists it. Studio mutations call this.
func ClearPost(slug string) error {
	if err := ClearPage(slug); err != nil {
		return err
	}
	return ClearPage(IndexSlug)
}

// ClearAll removes every cached blog page.
func ClearAll() error {
	return os.RemoveAll(filepath.Join("cache", "blog"))
}

// ClearOldCache removes cache files older than the specified duration
func ClearOldCache(maxAge time.Duration) error {
	cacheRoot := "cache"

	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if !strings.HasSuffix(path, ".html") {
			return nil
		}

		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}

		return nil
	})
}
