// Package moysklad is the adapter to the external inventory API.
//
// The sync pipeline only depends on one property of the wire format: a page
// has a `rows` array and an optional `meta.nextHref` cursor. Client.Pages turns
// a collection into a lazy, finite sequence of such pages; the concrete row
// schemas live with the normalizers in feature/inventory/normalize.
//
// # Errors
//
//   - FetchError: transport failure, non-2xx status, undecodable page, or a
//     cursor cycle (ErrCursorCycle).
//   - TimeoutError: the request deadline or the client timeout was exceeded.
//
// Either error aborts only the walk it happened in.
//
// # Usage
//
//	client, _ := moysklad.NewClient(cfg.MoySklad)
//	for page, err := range client.Pages(ctx, moysklad.CollectionStore, nil) {
//	    if err != nil {
//	        return err
//	    }
//	    handle(page.Rows)
//	}
package moysklad
