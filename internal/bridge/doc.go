// Package bridge implements the host side of the component-invocation
// channel: it forwards named fields from backend code to declared frontend
// components and hands back whatever value each component instance has
// reported, falling back to the caller-supplied default until one arrives.
package bridge
