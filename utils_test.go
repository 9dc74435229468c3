package main

import (
	"testing"

	"github.com/9seconds/ipcountry/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolParam(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "enabled", "Yes"} {
		assert.True(t, boolParam(v), v)
	}

	for _, v := range []string{"", "0", "false", "no", "whatever"} {
		assert.False(t, boolParam(v), v)
	}
}

func TestOverridePort(t *testing.T) {
	assert.Equal(t, "0.0.0.0:3000", overridePort("0.0.0.0:3000", 0))
	assert.Equal(t, "0.0.0.0:8080", overridePort("0.0.0.0:3000", 8080))
	assert.Equal(t, ":8080", overridePort(":3000", 8080))
}

func TestMakeProvidersNoToken(t *testing.T) {
	conf, err := parseConfig([]byte("{}"))

	require.NoError(t, err)

	_, _, err = makeProviders(conf, "")

	assert.ErrorIs(t, err, providers.ErrAuthTokenIsRequired)
}

func TestMakeProvidersTokenFromConfig(t *testing.T) {
	conf, err := parseConfig([]byte(`{providers: {primaryVendor: {specific_parameters: {auth_token: "xxx"}}}}`))

	require.NoError(t, err)

	primary, secondary, err := makeProviders(conf, "")

	assert.NoError(t, err)
	assert.Equal(t, providers.NameIPStack, primary.Name())
	assert.Equal(t, providers.NameIPAPI, secondary.Name())
}

func TestMakeProvidersTokenFromCLI(t *testing.T) {
	conf, err := parseConfig([]byte("{}"))

	require.NoError(t, err)

	primary, _, err := makeProviders(conf, "xxx")

	assert.NoError(t, err)
	assert.Equal(t, providers.NameIPStack, primary.Name())
}

func TestMakeCache(t *testing.T) {
	conf, err := parseConfig([]byte("{}"))

	require.NoError(t, err)

	cache, err := makeCache(conf)

	assert.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	conf, err = parseConfig([]byte("{cache_size: 1}"))

	require.NoError(t, err)

	cache, err = makeCache(conf)

	assert.NoError(t, err)

	cache.Put("1.1.1.1", "Australia")
	cache.Put("8.8.8.8", "United States")

	assert.Equal(t, 1, cache.Len())

	_, ok := cache.Get("1.1.1.1")

	assert.False(t, ok)
}
