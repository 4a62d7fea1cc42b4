// Package natskv provides a resolver.Store backed by a NATS JetStream key-value bucket.
//
// Parameter paths map onto dotted keys, so /app/db/password is stored under
// app.db.password. Values are read as strings and the entry revision is
// reported as the parameter version.
//
//	store, err := natskv.Connect(ctx, nats.DefaultURL, "params")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// Error Handling:
//   - missing or deleted keys map to resolver.ErrParameterNotFound
//   - authorization and permission violations map to resolver.ErrAccessDenied
//   - a missing bucket or an unreachable JetStream maps to resolver.ErrUnrecognizedClient
package natskv
