package countrylib

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	DefaultWorkerPoolSize = 4096

	workerPoolExpireTime = time.Minute
)

// ResolverOpts defines a set of parameters for a new Resolver. Primary
// and Secondary providers are mandatory. If Cache is nil, unbounded
// in-memory cache is used. If RateLimiter is nil, each provider gets
// DefaultRateLimit requests per hour.
type ResolverOpts struct {
	Primary        Provider
	Secondary      Provider
	Cache          CountryCache
	RateLimiter    *RateLimiter
	Logger         Logger
	WorkerPoolSize int
}

// Resolver resolves IP addresses into country names. It asks a cache
// first, then primary and secondary providers in this order, each one
// only if it has not exhausted its rate limit. Successful results are
// cached.
type Resolver struct {
	logger      Logger
	cache       CountryCache
	rateLimiter *RateLimiter
	providers   [providerTypeCount]Provider
	usageStats  [providerTypeCount]*UsageStats
	rwmutex     sync.RWMutex
	closeOnce   sync.Once
	workerPool  *ants.PoolWithFunc
	closed      bool
}

// Resolve returns a country name for a given IPv4 address. If none of
// providers was able to help, it returns *VendorUnavailableError.
func (r *Resolver) Resolve(ctx context.Context, ip net.IP) (string, error) {
	r.rwmutex.RLock()
	defer r.rwmutex.RUnlock()

	if r.closed {
		return "", ErrResolverShutdown
	}

	return r.resolve(ctx, ip)
}

// ResolveAll resolves a batch of IP addresses using a worker pool.
// Results have the same order as ips. An error is returned only if
// resolver is shutdown; failures of individual addresses are stored in
// results.
func (r *Resolver) ResolveAll(ctx context.Context, ips []net.IP) ([]ResolveResult, error) {
	r.rwmutex.RLock()
	defer r.rwmutex.RUnlock()

	if r.closed {
		return nil, ErrResolverShutdown
	}

	rv := make([]ResolveResult, len(ips))
	wg := &sync.WaitGroup{}
	groupRequest := newPoolGroupRequest(ctx, rv, wg, r.workerPool)

	defer groupRequest.cancel()

	for i, v := range ips {
		rv[i].IP = v

		if err := groupRequest.Do(ctx, i); err != nil {
			for j := i; j < len(rv); j++ {
				rv[j].IP = ips[j]
				rv[j].Err = err
			}

			break
		}
	}

	wg.Wait()

	return rv, nil
}

// SetRateLimit sets a new rate limit for the provider.
func (r *Resolver) SetRateLimit(provider ProviderType, limit int) error {
	if err := r.rateLimiter.SetLimit(provider, limit); err != nil {
		return err
	}

	r.logger.RateLimitUpdated(provider.String(), limit)

	return nil
}

// Stats returns usage statistics for all providers in order of
// resolution.
func (r *Resolver) Stats() []ProviderStats {
	rv := make([]ProviderStats, 0, len(ProviderTypes))

	for _, v := range ProviderTypes {
		rv = append(rv, ProviderStats{
			VendorUsage: r.rateLimiter.Usage(v),
			Type:        v,
			Usage:       r.usageStats[v],
		})
	}

	return rv
}

// CacheSize returns a number of cached countries.
func (r *Resolver) CacheSize() int {
	return r.cache.Len()
}

// Shutdown stops a worker pool. All subsequent calls to Resolve and
// ResolveAll are going to fail with ErrResolverShutdown.
func (r *Resolver) Shutdown() {
	r.rwmutex.Lock()
	defer r.rwmutex.Unlock()

	r.closed = true

	r.closeOnce.Do(func() {
		r.workerPool.Release()
	})
}

func (r *Resolver) resolve(ctx context.Context, ip net.IP) (string, error) {
	ip = ip.To4()
	if ip == nil {
		return "", ErrNotIPv4
	}

	cacheKey := ip.String()

	if country, ok := r.cache.Get(cacheKey); ok {
		return country, nil
	}

	causes := make([]error, 0, len(ProviderTypes))

	for _, v := range ProviderTypes {
		country, err := r.lookup(ctx, v, ip)
		if err == nil {
			r.cache.Put(cacheKey, country)

			return country, nil
		}

		causes = append(causes, err)
	}

	return "", &VendorUnavailableError{
		Causes: causes,
	}
}

func (r *Resolver) lookup(ctx context.Context, providerType ProviderType, ip net.IP) (string, error) {
	provider := r.providers[providerType]
	stats := r.usageStats[providerType]

	if !r.rateLimiter.TryReserve(providerType) {
		stats.Skipped()
		r.logger.CapacityExhausted(ip, provider.Name())

		return "", fmt.Errorf("provider %s is skipped: %w", provider.Name(), ErrCapacityExhausted)
	}

	country, err := provider.Lookup(ctx, ip)
	if err == nil && country == "" {
		err = &ProviderError{
			Provider: provider.Name(),
			Err:      ErrEmptyCountry,
		}
	}

	stats.Used(err)

	if err != nil {
		r.rateLimiter.Release(providerType)
		r.logger.LookupError(ip, provider.Name(), err)

		return "", err
	}

	r.rateLimiter.Commit(providerType)

	return country, nil
}

func (r *Resolver) resolveIP(args interface{}) {
	params := args.(*resolveIPRequest)
	defer params.wg.Done()

	result := &params.results[params.index]

	result.Country, result.Err = r.resolve(params.ctx, result.IP)
}

// NewResolver creates a new Resolver.
func NewResolver(opts ResolverOpts) (*Resolver, error) {
	if opts.Primary == nil || opts.Secondary == nil {
		return nil, ErrProviderIsRequired
	}

	rv := &Resolver{
		logger:      opts.Logger,
		cache:       opts.Cache,
		rateLimiter: opts.RateLimiter,
	}

	if rv.logger == nil {
		rv.logger = noopLogger{}
	}

	if rv.cache == nil {
		rv.cache = NewCountryCache()
	}

	if rv.rateLimiter == nil {
		rv.rateLimiter, _ = NewRateLimiter(DefaultRateLimit, DefaultRateLimit)
	}

	rv.providers[ProviderPrimary] = opts.Primary
	rv.providers[ProviderSecondary] = opts.Secondary

	for _, v := range ProviderTypes {
		rv.usageStats[v] = &UsageStats{
			Name: rv.providers[v].Name(),
		}
	}

	poolSize := opts.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = DefaultWorkerPoolSize
	}

	pool, err := ants.NewPoolWithFunc(poolSize, rv.resolveIP,
		ants.WithExpiryDuration(workerPoolExpireTime))
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	rv.workerPool = pool

	return rv, nil
}

type noopLogger struct{}

func (noopLogger) LookupError(net.IP, string, error) {}
func (noopLogger) CapacityExhausted(net.IP, string)  {}
func (noopLogger) RateLimitUpdated(string, int)      {}
