package devdocs_test

import (
	"testing"

	"github.com/fwojciec/devdocs"
	"github.com/stretchr/testify/assert"
)

func docs(slugs ...string) []*devdocs.Doc {
	out := make([]*devdocs.Doc, len(slugs))
	for i, s := range slugs {
		out[i] = &devdocs.Doc{Slug: s, Name: s}
	}
	return out
}

func TestSplitSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug    string
		base    string
		version string
		ok      bool
	}{
		{"python~3.12", "python", "3.12", true},
		{"go", "go", "", false},
		{"a~b~c", "a~b~c", "", false},
		{"react~18", "react", "18", true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()

			base, version, ok := devdocs.SplitSlug(tt.slug)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{3, 10}, devdocs.ParseVersion("3.10"))
	assert.Equal(t, []int{18}, devdocs.ParseVersion("18"))
	assert.Equal(t, []int{4, 0}, devdocs.ParseVersion("4.beta"))
	assert.Equal(t, []int{0}, devdocs.ParseVersion(""))
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, devdocs.CompareVersions("3.10", "3.9"))
	assert.Equal(t, -1, devdocs.CompareVersions("3", "3.0"))
	assert.Equal(t, 0, devdocs.CompareVersions("4.beta", "4.0"))
	assert.Equal(t, -1, devdocs.CompareVersions("2.7", "10"))
}

func TestLatestVersions(t *testing.T) {
	t.Parallel()

	t.Run("picks numerically highest version per base", func(t *testing.T) {
		t.Parallel()

		latest := devdocs.LatestVersions(docs("python~3.9", "python~3.10", "python~3.8", "go", "react~17", "react~18"))

		assert.Equal(t, map[string]string{
			"python": "python~3.10",
			"react":  "react~18",
		}, latest)
	})

	t.Run("last slug wins among equal versions", func(t *testing.T) {
		t.Parallel()

		latest := devdocs.LatestVersions(docs("node~4.0", "node~4.beta"))

		assert.Equal(t, "node~4.beta", latest["node"])
	})

	t.Run("non-numeric segment sorts as zero", func(t *testing.T) {
		t.Parallel()

		latest := devdocs.LatestVersions(docs("node~4.beta", "node~4.1"))

		assert.Equal(t, "node~4.1", latest["node"])
	})
}

func TestResolveSlugs(t *testing.T) {
	t.Parallel()

	remote := docs("python~3.9", "python~3.10", "python~3.8", "go", "react~18")

	t.Run("resolves bare name to highest version", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"python~3.10"}, devdocs.ResolveSlugs(remote, []string{"python"}))
	})

	t.Run("leaves versioned input unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"python~3.8"}, devdocs.ResolveSlugs(remote, []string{"python~3.8"}))
	})

	t.Run("passes through names without variants", func(t *testing.T) {
		t.Parallel()

		got := devdocs.ResolveSlugs(remote, []string{"go", "rust"})
		assert.Equal(t, []string{"go", "rust"}, got)
	})

	t.Run("preserves order and does not mutate input", func(t *testing.T) {
		t.Parallel()

		in := []string{"go", "react", "python~3.9", "python"}
		got := devdocs.ResolveSlugs(remote, in)

		assert.Equal(t, []string{"go", "react~18", "python~3.9", "python~3.10"}, got)
		assert.Equal(t, []string{"go", "react", "python~3.9", "python"}, in)
	})

	t.Run("empty remote index resolves nothing", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"python"}, devdocs.ResolveSlugs(nil, []string{"python"}))
	})
}

func TestParseDocList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"go", "python"}, devdocs.ParseDocList(`["go","python"]`))
	assert.Equal(t, []string{}, devdocs.ParseDocList(`not json`))
	assert.Equal(t, []string{}, devdocs.ParseDocList(`{"go":1}`))
	assert.Equal(t, []string{}, devdocs.ParseDocList(`null`))
	assert.Equal(t, []string{}, devdocs.ParseDocList(``))
}
