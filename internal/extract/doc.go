// Package extract turns raw page markup into typed structured records. All
// functions are pure: no network access, no retries. Ambiguous markup is
// resolved through ordered fallback cascades; malformed input degrades to
// empty fields, never to an error, except when the document itself cannot be
// parsed.
package extract
