package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"time"

	"github.com/9seconds/ipcountry/countrylib"
	"github.com/hjson/hjson-go"
)

const (
	DefaultListen         = "0.0.0.0:3000"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultRateLimitBurst = 10
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen         string                    `json:"listen"`
	WorkerPoolSize uint                      `json:"worker_pool_size"`
	CacheSize      uint                      `json:"cache_size"`
	Providers      map[string]configProvider `json:"providers"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetWorkerPoolSize() int {
	if c.WorkerPoolSize == 0 {
		return countrylib.DefaultWorkerPoolSize
	}

	return int(c.WorkerPoolSize)
}

func (c config) GetCacheSize() int {
	return int(c.CacheSize)
}

// GetProvider returns a configuration of the vendor. Missing vendors
// get all defaults.
func (c config) GetProvider(provider countrylib.ProviderType) configProvider {
	return c.Providers[provider.String()]
}

type configProvider struct {
	RateLimit          *uint             `json:"rate_limit"`
	RateLimitInterval  duration          `json:"rate_limit_interval"`
	RateLimitBurst     uint              `json:"rate_limit_burst"`
	HTTPTimeout        duration          `json:"http_timeout"`
	SpecificParameters map[string]string `json:"specific_parameters"`
}

func (c configProvider) GetRateLimit() int {
	if c.RateLimit == nil {
		return countrylib.DefaultRateLimit
	}

	return int(*c.RateLimit)
}

// GetRateLimitInterval returns 0 if outgoing requests should not be
// throttled.
func (c configProvider) GetRateLimitInterval() time.Duration {
	return c.RateLimitInterval.Duration
}

func (c configProvider) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c configProvider) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c configProvider) GetSpecificParameters() map[string]string {
	if c.SpecificParameters == nil {
		return map[string]string{}
	}

	return c.SpecificParameters
}

func parseConfig(content []byte) (*config, error) {
	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse hjson: %w", err)
	}

	rawBytes, err := json.Marshal(rawMap)
	if err != nil {
		return nil, fmt.Errorf("cannot convert to json: %w", err)
	}

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("incorrect config structure: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	for k := range conf.Providers {
		if _, err := countrylib.ParseProviderType(k); err != nil {
			return nil, fmt.Errorf("incorrect provider %s: %w", k, err)
		}
	}

	return &conf, nil
}

func readConfig(path string) (*config, error) {
	if path == "" {
		return parseConfig([]byte("{}"))
	}

	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	return parseConfig(content)
}
