//go:build test

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_CreatesRotatingFiles(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	dir := t.TempDir()
	opts := Options{
		Name:              "enricher-test",
		Dir:               dir,
		Level:             DebugLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	}

	c, err := Setup(opts)
	require.NoError(t, err)
	require.NotNil(t, c)

	WithComponent("test").Info("정보 로그")
	WithComponent("test").Error("에러 로그")
	WithComponent("test").Debug("디버그 로그")
	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "enricher-test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "정보 로그")
	assert.Contains(t, string(mainLog), "에러 로그")
	assert.NotContains(t, string(mainLog), "디버그 로그")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "enricher-test.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "에러 로그")
	assert.NotContains(t, string(criticalLog), "정보 로그")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "enricher-test.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "디버그 로그")
}

func TestSetup_OnlyOnce(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	dir := t.TempDir()
	c1, err := Setup(Options{Name: "first", Dir: dir})
	require.NoError(t, err)
	c2, err := Setup(Options{Name: "second", Dir: dir})
	require.NoError(t, err)

	assert.Same(t, c1, c2)
	_ = c1.Close()
}

func TestSetup_KeepsFirstError(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	_, err1 := Setup(Options{})
	require.Error(t, err1)

	_, err2 := Setup(Options{Name: "valid", Dir: t.TempDir()})
	assert.Equal(t, err1, err2)
}

func TestSetup_JSONFormat(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	dir := t.TempDir()
	c, err := Setup(Options{Name: "json", Dir: dir, Format: FormatJSON})
	require.NoError(t, err)

	WithComponentAndFields("pipeline", Fields{"product_id": "gid://shopify/Product/1"}).Info("완료")
	require.NoError(t, c.Close())

	content, err := os.ReadFile(filepath.Join(dir, "json.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"component":"pipeline"`)
	assert.Contains(t, string(content), `"product_id":"gid://shopify/Product/1"`)
}

func TestSetDebugMode(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	SetDebugMode(true)
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())
	assert.True(t, IsDebugEnabled())

	SetDebugMode(false)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.False(t, IsDebugEnabled())
}
