// Package domain defines the world styles, generation requests and results,
// and the client-input errors shared by the service, the HTTP API and the CLI.
package domain
