// Package core contains the channel contracts, configuration snapshot types,
// the layered account resolver, and the error envelope helpers. Transport,
// webhook, and channel packages depend on core; core depends on none of them.
package core
