// Package offers stores marketplace listings per account and serves them
// matched against the catalog. Listings arrive through bulk CSV imports
// keyed on (account, external id); matching, filtering and sorting are
// delegated to the engine.
package offers
