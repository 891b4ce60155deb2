// Package version 빌드 시점에 주입된 버전 정보를 제공합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/product-enricher/internal/pkg/version.appVersion=v1.2.0 \
//	    -X github.com/darkkaiser/product-enricher/internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)"
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

var (
	appVersion    = ""
	gitCommitHash = ""
	buildDate     = ""
)

var readBuildInfo = debug.ReadBuildInfo

var current atomic.Value

func init() {
	current.Store(enrich(Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
	}))
}

// Info 빌드 및 실행 환경 정보입니다.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DirtyBuild bool   `json:"dirty_build"`
}

// Get 현재 바이너리의 빌드 정보를 반환합니다.
func Get() Info {
	return current.Load().(Info)
}

// enrich ldflags로 주입되지 않은 항목을 runtime/debug의 VCS 정보로 채웁니다.
func enrich(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	if info, ok := readBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				bi.DirtyBuild = setting.Value == "true"
			}
		}
		if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// String "v1.2.0 (commit: f25b8bf, built: 2025-12-05T11:30:00Z, go1.24.0 linux/amd64)" 형식의 문자열을 반환합니다.
func (i Info) String() string {
	version := i.Version
	if i.DirtyBuild {
		version += "+dirty"
	}

	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	return version + " (commit: " + commit + ", built: " + i.BuildDate + ", " + i.GoVersion + " " + i.OS + "/" + i.Arch + ")"
}

// UserAgent 외부 API 호출 시 사용할 User-Agent 값을 반환합니다.
func UserAgent(appName string) string {
	return appName + "/" + Get().Version
}
