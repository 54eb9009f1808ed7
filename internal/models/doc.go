// Package models defines the entities of the cinema ticketing API consumed by cinecli.
//
// Every type here is owned by the remote backend; the client holds transient,
// read-mostly copies fetched per command or per flow step:
//   - [Movie], [Theater], [Room], [Showtime] : immutable catalog records
//   - [Seat] : a snapshot of server-side seat state, stale after any failed hold
//   - [Concession] : catalog item; the client tracks selected quantity locally
//   - [BookingDetail] : finalized ticket retrieved by confirmation code
//
// [Page] wraps the backend's paged responses (content list + total page
// count). Field tags follow the backend's JSON contract, including the
// gateway's vnp_* query parameters echoed back on the payment return leg.
package models
