package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 8, cfg.Catalog.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Catalog.FetchTimeout)
	assert.Equal(t, RevisionLocal, cfg.Catalog.Revision)
	assert.Equal(t, "catalog:revision", cfg.Catalog.RevisionKey)
	assert.Equal(t, "books", cfg.Elastic.Index)
	assert.False(t, cfg.MQ.Enabled)
}

func TestLoadFile_Overrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
store:
  driver: elastic
elastic:
  url: http://es:9200
  index: catalog
catalog:
  fetch_timeout: 2s
  revision: redis
mq:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, DriverElastic, cfg.Store.Driver)
	assert.Equal(t, "http://es:9200", cfg.Elastic.URL)
	assert.Equal(t, "catalog", cfg.Elastic.Index)
	assert.Equal(t, 2*time.Second, cfg.Catalog.FetchTimeout)
	assert.Equal(t, RevisionRedis, cfg.Catalog.Revision)
	assert.Equal(t, "bookshelf.catalog", cfg.MQ.Exchange)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("BOOKSHELF_STORE_DRIVER", "mysql")
	t.Setenv("BOOKSHELF_CATALOG_PAGE_SIZE", "12")

	cfg, err := LoadFile(writeConfig(t, "store:\n  driver: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"端口越界", "server:\n  port: 70000\n"},
		{"未知存储", "store:\n  driver: sqlite\n"},
		{"未知版本号来源", "catalog:\n  revision: etcd\n"},
		{"每页数量非法", "catalog:\n  page_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "bookshelf",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(db:3306)/bookshelf?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
