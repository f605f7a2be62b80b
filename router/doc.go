// Package router turns endpoint descriptions into typed results.
//
// A Router builds an *http.Request from an endpoint.Endpoint, sends it
// through a transport, classifies the status code and decodes the body
// into T. Every failure is delivered as a *neterr.Error.
//
// Synchronous use:
//
//	countries := router.New[[]Country]()
//	list, err := countries.Do(ctx, endpoint.Descriptor{
//	    Base:  base,
//	    Route: "v2/all",
//	})
//
// Asynchronous use delivers exactly one continuation through the
// router's Dispatcher:
//
//	call := countries.Send(ctx, ep,
//	    func(list []Country) { ... },
//	    func(err *neterr.Error) { ... },
//	)
//	call.Cancel()
package router
