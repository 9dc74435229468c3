// This package provides a set of structs and functions which are used
// to resolve IPv4 addresses into country names.
//
// countrylib is a core of the ipcountry project. The rest of the
// application is an example on how to use this library: how to read
// the configuration, how to implement providers, how to log.
//
// Resolver is a main entity of the countrylib. It checks a country
// cache first. If there is nothing, it asks a primary provider and
// then a secondary one. Each provider has its own hourly rate limit: if
// it is exhausted, the provider is skipped until the window is over or
// until someone raises the limit. If nobody could tell a country, you
// get VendorUnavailableError.
//
// Resolver also provides http.Handler with JSON API, see
// NewHTTPHandler.
package countrylib
