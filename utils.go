package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/9seconds/ipcountry/providers"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeProviders(conf *config, ipstackAPIKey string) (countrylib.Provider, countrylib.Provider, error) {
	primaryConf := conf.GetProvider(countrylib.ProviderPrimary)
	params := primaryConf.GetSpecificParameters()

	if ipstackAPIKey == "" {
		ipstackAPIKey = params["auth_token"]
	}

	primary, err := providers.NewIPStack(makeNewHTTPClient(primaryConf),
		ipstackAPIKey, boolParam(params["secure"]))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create ipstack provider: %w", err)
	}

	secondary := providers.NewIPAPI(makeNewHTTPClient(
		conf.GetProvider(countrylib.ProviderSecondary)))

	return primary, secondary, nil
}

func makeCache(conf *config) (countrylib.CountryCache, error) {
	if size := conf.GetCacheSize(); size > 0 {
		return countrylib.NewLRUCountryCache(size)
	}

	return countrylib.NewCountryCache(), nil
}

func makeNewHTTPClient(conf configProvider) countrylib.HTTPClient {
	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
	}

	return countrylib.NewHTTPClient(httpClient,
		"ipcountry/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst())
}

func boolParam(param string) bool {
	switch strings.ToLower(param) {
	case "1", "true", "enabled", "yes":
		return true
	default:
		return false
	}
}

// overridePort replaces a port in listen address if port is not 0.
func overridePort(listen string, port uint16) string {
	if port == 0 {
		return listen
	}

	host, _, err := net.SplitHostPort(listen)
	if err != nil {
		host = ""
	}

	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}
