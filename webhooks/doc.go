// Package webhooks serves the relay's inbound webhook endpoint.
//
// Every authenticated request is acknowledged with 200, including malformed
// bodies and unsupported events, so the relay does not retry. Only a failed
// secret check answers 401.
package webhooks
