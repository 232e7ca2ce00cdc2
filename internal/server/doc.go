// Package server provides the HTTP surface of the service: the session
// API, Kubernetes-style health probes, and the dedicated Prometheus
// metrics listener.
package server
