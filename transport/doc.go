// Package transport is the network boundary of the client.
//
// It takes a fully built *http.Request, sends it through a standard
// *http.Client and returns the status, headers and complete body together
// with detailed timing metrics. Sockets, TLS and redirects stay with net/http.
//
// Basic Usage:
//
//	client := transport.NewClient(
//	    transport.WithHeader("User-Agent", "netkit"),
//	)
//
//	req, _ := http.NewRequest("GET", "https://api.example.com/users", nil)
//	resp, err := client.Do(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Status: %d\n", resp.StatusCode)
//	fmt.Printf("TTFB: %v\n", resp.Timing.TimeToFirstByte)
//
// Thread Safety:
//
// Client is safe for concurrent use. Multiple goroutines may invoke methods
// on a Client simultaneously.
package transport
