// Package inbound owns the HTTP route table used by webhook endpoints.
//
// Registration is first-wins: a second handler for a taken path is ignored
// and receives a no-op unregister function.
package inbound
