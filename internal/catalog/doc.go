// Package catalog provides client-side helpers for browsing the movie and
// theater catalogs: windowed pagination over the backend's coarse pages and
// geographic filtering of theaters.
package catalog
