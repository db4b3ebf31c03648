package images

// Curated fallback images used when a post or project has no
// author-supplied main image.

type Bucket string

const (
	Blog      Bucket = "blog"
	Portfolio Bucket = "portfolio"
)

var fallbackImages = map[string][]string{
	"tech": {
		"https://picsum.photos/800/600?random=1",
		"https://picsum.photos/800/600?random=2",
		"https://picsum.photos/800/600?random=3",
		"https://picsum.photos/800/600?random=4",
	},
	"design": {
		"https://picsum.photos/800/600?random=5",
		"https://picsum.photos/800/600?random=6",
		"https://picsum.photos/800/600?random=7",
		"https://picsum.photos/800/600?random=8",
	},
	"business": {
		"https://picsum.photos/800/600?random=9",
		"https://picsum.photos/800/600?random=10",
		"https://picsum.photos/800/600?random=11",
		"https://picsum.photos/800/600?random=12",
	},
	"abstract": {
		"https://picsum.photos/800/600?random=13",
		"https://picsum.photos/800/600?random=14",
		"https://picsum.photos/800/600?random=15",
		"https://picsum.photos/800/600?random=16",
	},
}

func categoriesFor(bucket Bucket) []string {
	if bucket == Portfolio {
		return []string{"tech", "design", "abstract"}
	}
	return []string{"tech", "design", "business"}
}

// seedHash is a polynomial hash over the seed's characters, wrapped to
// the 32-bit signed range at each step so the same seed always lands on
// the same value regardless of platform.
func seedHash(seed string) int32 {
	var hash int32
	for _, r := range seed {
		hash = hash*31 + int32(r)
	}
	return hash
}

func abs32(v int32) int {
	n := int64(v)
	if n < 0 {
		n = -n
	}
	return int(n)
}

// Pick returns the fallback image for a content identifier. It is pure:
// the same seed and bucket yield the same URL across calls and restarts.
func Pick(seed string, bucket Bucket) string {
	categories := categoriesFor(bucket)
	hash := seedHash(seed)

	category := categories[abs32(hash)%len(categories)]
	list := fallbackImages[category]
	return list[abs32(hash)%len(list)]
}
