// Package component holds the process-wide registration state for frontend
// components: which names are declared, and which asset-resolution strategy
// serves each one. The registry is populated once at startup and is read-only
// afterwards, so repeated invocations share it without synchronization.
package component
