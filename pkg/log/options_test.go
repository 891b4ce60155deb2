package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	existingFile := filepath.Join(t.TempDir(), "existing_file")
	require.NoError(t, os.WriteFile(existingFile, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"정상", Options{Name: "product-enricher"}, ""},
		{"JSON 형식", Options{Name: "product-enricher", Format: FormatJSON}, ""},
		{"Name 누락", Options{}, "애플리케이션 식별자"},
		{"Dir가 파일", Options{Name: "a", Dir: existingFile}, "이미 파일로 존재합니다"},
		{"알 수 없는 형식", Options{Name: "a", Format: "xml"}, "지원하지 않는 로그 형식"},
		{"음수 MaxAge", Options{Name: "a", MaxAge: -1}, "MaxAge"},
		{"음수 MaxSizeMB", Options{Name: "a", MaxSizeMB: -1}, "MaxSizeMB"},
		{"음수 MaxBackups", Options{Name: "a", MaxBackups: -1}, "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("product-enricher")
	assert.Equal(t, FormatJSON, prod.Format)
	assert.False(t, prod.EnableConsoleLog)
	assert.True(t, prod.EnableCriticalLog)
	assert.NoError(t, prod.Validate())

	dev := NewDevelopmentOptions("product-enricher")
	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}
