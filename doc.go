// Ipcountry is a service which tells a country name for a given IPv4
// address.
//
// It does not have any geolocation database. Instead, it asks online
// vendors and remembers their answers. Each vendor has a quota of
// requests per hour and the service never exceeds it.
//
// Tool itself is organized into 3 logical parts:
//
// Countrylib
//
// countrylib is a main package of the application. It has Resolver,
// a cache, per-vendor rate limiter and HTTP API. Resolver asks a cache
// first, then primary and secondary vendors in this order.
//
// Providers
//
// This package has implementations of the vendors: ipstack.com is
// primary, ip-api.com is secondary.
//
// Ipcountry
//
// A main package itself wires both countrylib and providers. Resulting
// binary starts http server and you can use it in your infrastructure
// as is.
package main
