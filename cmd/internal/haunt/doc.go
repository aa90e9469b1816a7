// Package haunt serves Specter's detection and sightings routes.
//
// Every handler returns a fixed payload; the package exists to exercise
// the authentication gate and request validation, not to detect anything.
// Handlers assume they are mounted behind a realm's auth middleware and
// consume only the principal identity the gate attaches.
package haunt
