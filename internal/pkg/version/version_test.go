package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich_FillsFromBuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "f25b8bf0123456789"},
				{Key: "vcs.time", Value: "2025-12-05T11:30:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	bi := enrich(Info{})

	assert.Equal(t, "v0.3.1", bi.Version)
	assert.Equal(t, "f25b8bf0123456789", bi.Commit)
	assert.Equal(t, "2025-12-05T11:30:00Z", bi.BuildDate)
	assert.True(t, bi.DirtyBuild)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
	assert.Equal(t, "v0.3.1+dirty (commit: f25b8bf, built: 2025-12-05T11:30:00Z, "+runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH+")", bi.String())
}

func TestEnrich_LdflagsTakePrecedence(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ignored"}},
		}, true
	}

	bi := enrich(Info{Version: "v1.0.0", Commit: "abc1234"})

	assert.Equal(t, "v1.0.0", bi.Version)
	assert.Equal(t, "abc1234", bi.Commit)
	assert.Equal(t, unknown, bi.BuildDate)
}

func TestEnrich_NoBuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	bi := enrich(Info{})

	assert.Equal(t, unknown, bi.Version)
	assert.Equal(t, unknown, bi.Commit)
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "product-enricher/"+Get().Version, UserAgent("product-enricher"))
}
