package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingConventionToField(t *testing.T) {
	nc := NewDefaultNaming()
	assert.NotNil(t, nc)
	assert.Equal(t, "Status", nc.ToField("status"))
	assert.Equal(t, "CustomerId", nc.ToField("customer_id"))
	assert.Equal(t, "DateOfBirth", nc.ToField("dateOfBirth"))
}

func TestNamingConventionToColumn(t *testing.T) {
	nc := NewDefaultNaming()
	assert.Equal(t, "status", nc.ToColumn("Status"))
	assert.Equal(t, "customer_id", nc.ToColumn("CustomerId"))
	assert.Equal(t, "date_of_birth", nc.ToColumn("DateOfBirth"))
}

func TestExactNaming(t *testing.T) {
	nc := NewExactNaming()
	assert.Equal(t, "customer_id", nc.ToField("customer_id"))
	assert.Equal(t, "CustomerId", nc.ToColumn("CustomerId"))
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.DefaultPageSize())
	assert.Equal(t, DefaultMaxPageSize, cfg.MaxPageSize())
	assert.IsType(t, &defaultNaming{}, cfg.Naming())
	assert.NotNil(t, cfg.Logger())
}

func TestFromViperReadsConfig(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
naming: exact
default-page-size: 10
max-page-size: 50
log-level: debug
`)))

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DefaultPageSize())
	assert.Equal(t, 50, cfg.MaxPageSize())
	assert.IsType(t, &exactNaming{}, cfg.Naming())
}

func TestFromViperErrors(t *testing.T) {
	items := []struct {
		key   string
		value interface{}
	}{
		{"naming", "kebab"},
		{"default-page-size", 0},
		{"max-page-size", -1},
		{"default-page-size", 1000},
		{"log-level", "loud"},
	}

	for _, item := range items {
		v := viper.New()
		v.Set(item.key, item.value)
		_, err := FromViper(v)
		assert.Error(t, err, "%s=%v", item.key, item.value)
	}
}
