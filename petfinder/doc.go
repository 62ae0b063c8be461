// Package petfinder provides a client for the Petfinder v2 API.
//
// Petfinder lists adoptable animals and the shelters and rescues that care
// for them. The client covers animal types and breeds, animal lookup and
// search, random animals, and organization lookup and search.
//
// # Authentication
//
// Requests are authorized with OAuth2 client credentials. NewClient exchanges
// the API key and secret for an access token straight away, so bad
// credentials surface as ErrInvalidCredentials before any other call is made.
// Tokens are cached and refreshed when they expire.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := petfinder.NewClient(
//		"your-api-key",
//		"your-api-secret",
//		logger,
//		petfinder.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.SearchAnimals(ctx, petfinder.AnimalSearch{
//		Type:     "cat",
//		Location: "Seattle, WA",
//		Distance: 25,
//	}, petfinder.PageOptions{Pages: 3})
//
// # Pagination
//
// Searches return the first page unless PageOptions asks for more. Pages
// beyond the first are fetched concurrently and concatenated in page order.
// Asking for more pages than exist returns what is available and logs a
// warning. AllPages fetches every page at the largest page size.
//
// # Error Handling
//
//   - ErrInvalidConfig: missing key, secret or a malformed base URL
//   - ErrInvalidCredentials: the token endpoint rejected the credentials
//   - ErrInvalidParameters: local validation or a 400 response
//   - ErrInsufficientAccess: 401 or 403 responses
//   - ErrResourceNotFound: 404 responses
//   - ErrUnexpected: anything else the API returns
//
// Local validation failures are reported as *InvalidParametersError listing
// every rejected parameter. Responses from the API are *APIError values that
// unwrap to the matching sentinel:
//
//	if errors.Is(err, petfinder.ErrResourceNotFound) {
//		// no such animal
//	}
package petfinder
