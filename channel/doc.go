// Package channel exposes the WhatsApp (Kapso) integration to a host gateway
// as a channel plugin: descriptor, account configuration operations, DM
// security policy, target handling, outbound text delivery, status and
// gateway lifecycle hooks.
//
// The channel is webhook based. It has no connection to hold open, so it
// always reports itself as running and its start hook does nothing.
package channel
