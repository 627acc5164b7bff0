// Package middleware provides HTTP middleware for the Cloud Notes API.
//
// Middlewares compose with Chain:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(origins),
//	)
//
// Auth is applied per-route to the endpoints that require a logged-in user.
// It validates the bearer token, resolves the account, and stores both the
// user ID and the full user in the request context, where handlers read
// them back with GetUserID and GetPrincipal.
package middleware
