package devdocs

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// VersionSeparator separates a doc's base name from its version in a slug,
// as in "python~3.12".
const VersionSeparator = "~"

// SplitSlug splits a versioned slug into its base name and version.
// ok is false unless the slug contains exactly one separator.
func SplitSlug(slug string) (base, version string, ok bool) {
	if strings.Count(slug, VersionSeparator) != 1 {
		return slug, "", false
	}
	base, version, _ = strings.Cut(slug, VersionSeparator)
	return base, version, true
}

// ParseVersion converts a version such as "3.12" into its numeric components.
// Segments that are not integers count as 0, so "4.beta" equals "4.0".
func ParseVersion(version string) []int {
	parts := strings.Split(version, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		nums[i] = n
	}
	return nums
}

// CompareVersions compares two versions component by component.
// When one is a prefix of the other the shorter one is less.
func CompareVersions(a, b string) int {
	return slices.Compare(ParseVersion(a), ParseVersion(b))
}

// LatestVersions maps each base name to its highest versioned slug.
// Slugs with equal versions keep their index order and the last one wins.
func LatestVersions(docs []*Doc) map[string]string {
	groups := make(map[string][]string)
	for _, d := range docs {
		base, _, ok := SplitSlug(d.Slug)
		if !ok {
			continue
		}
		groups[base] = append(groups[base], d.Slug)
	}

	latest := make(map[string]string, len(groups))
	for base, slugs := range groups {
		slices.SortStableFunc(slugs, func(a, b string) int {
			_, va, _ := SplitSlug(a)
			_, vb, _ := SplitSlug(b)
			return CompareVersions(va, vb)
		})
		latest[base] = slugs[len(slugs)-1]
	}
	return latest
}

// ResolveSlugs replaces every bare identifier that has versioned variants in
// docs with its highest version. Versioned and unknown identifiers are
// returned unchanged. The result has the same length and order as requested.
func ResolveSlugs(docs []*Doc, requested []string) []string {
	latest := LatestVersions(docs)

	resolved := make([]string, len(requested))
	for i, slug := range requested {
		resolved[i] = slug
		if strings.Contains(slug, VersionSeparator) {
			continue
		}
		if v, ok := latest[slug]; ok {
			resolved[i] = v
		}
	}
	return resolved
}

// ParseDocList decodes a JSON array of doc identifiers.
// Malformed input yields an empty list rather than an error.
func ParseDocList(s string) []string {
	var docs []string
	if err := json.Unmarshal([]byte(s), &docs); err != nil || docs == nil {
		return []string{}
	}
	return docs
}
