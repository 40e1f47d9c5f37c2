// Package api provides the authenticated HTTP gateway to the streaming
// service backend.
//
// The package is organized into several components:
//
//   - Client: the shared HTTP client; attaches the bearer credential to
//     every request and fires the unauthorized hook on 401s
//   - Types: domain models for catalog, profile, feed, and auth payloads
//   - Errors: structured error types mirroring the backend's failure modes
//
// # Usage
//
// Create a client with the service URL:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := api.NewClient("https://stream.example.com/api", logger,
//		api.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.ListMovies(ctx, api.MovieQuery{
//		SortBy:    "published_at",
//		PageIndex: 1,
//		PageSize:  18,
//	})
//
// # Error Handling
//
// Transport failures wrap ErrNoConnection; every non-2xx response becomes
// an *APIError carrying the status code and the server's message:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) && apiErr.IsValidation() {
//		fmt.Println(apiErr.Message)
//	}
//
// A 401 on any endpoint other than login or playback additionally invokes
// the registered unauthorized hook, which the session store uses to tear
// itself down.
package api
