// Package pagination implements the opaque cursors used by the list methods
// (prompts/list and resources/list).
//
// A server slices its full list with Paginate and returns the next cursor in
// the result's nextCursor member. Clients echo that cursor in the next
// request's params and stop when no cursor comes back.
//
//	page, next, err := pagination.Paginate(all, params.Cursor, pagination.DefaultLimit)
//	if err != nil {
//	    return err // invalid parameters
//	}
//
// Cursors are opaque to clients. Their only guarantee is that a cursor
// returned by Paginate is accepted by Paginate.
//
// On the client side a Collector accumulates pages until the server stops
// returning a cursor:
//
//	c := pagination.NewCollector[resource.Resource]()
//	for c.HasMore() {
//	    result := list(c.NextParams())
//	    c.Update(result.Resources, result.NextCursor)
//	}
package pagination
