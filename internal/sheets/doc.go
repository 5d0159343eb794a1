// Package sheets provides an HTTP client for spreadsheet-backed JSON web APIs.
//
// # Overview
//
// The endpoint (typically a Google Apps Script web app) answers a GET with a
// JSON array of arrays. Row 0 holds the column headers and every following
// row holds data. This package fetches that payload and converts each cell to
// its display text.
//
// # Architecture
//
//   - client.go: HTTP client, placeholder detection and status handling
//   - types.go: Row/Dataset types and JSON-to-display-text coercion
//   - errors.go: FetchError and its ErrorKind classification
//
// # Client Usage
//
//	client, err := sheets.NewClient(cfg.APIURL, 30*time.Second)
//	if err != nil {
//		return fmt.Errorf("init sheets client: %w", err)
//	}
//
//	ds, err := client.FetchDataset(ctx)
//	switch {
//	case err != nil:
//		// sheets.KindOf(err) tells configuration, transport and parse apart
//	case len(ds) == 0:
//		// valid response without data
//	}
//
// # Payload Rules
//
//   - Non-2xx responses are transport errors.
//   - Malformed JSON is a parse error.
//   - Valid JSON that is not an array, or an empty array, is an empty dataset.
//   - Numbers keep the literal text sent by the server ("1.50" stays "1.50").
//   - null renders blank; nested arrays are comma-joined.
//   - Rows may be ragged; nothing is padded or trimmed here.
//
// # Configuration Guard
//
// URLs containing PlaceholderSentinel are accepted by NewClient but every
// FetchDataset call fails with ErrNotConfigured before any network access.
package sheets
