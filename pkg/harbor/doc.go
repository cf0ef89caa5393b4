// Package harbor provides types, interfaces, and helpers for working with the
// Harbor v2.0 REST API.
//
// # Overview
//
// The harbor package defines the payload models (e.g., Artifact, Project,
// ScannerRegistration, RetentionPolicy) and the interfaces of the
// resource-oriented clients (e.g., ArtifactsClient, ScannersClient). The
// concrete implementation is wired by the harborclient package, which most
// consumers should import to construct a client.
//
//	cli, err := harborclient.NewWithPassword(ctx, "harbor.example.com", "admin", "Harbor12345")
//	if err != nil { log.Fatal(err) }
//	defer cli.Close()
//
//	report, found, err := cli.Artifacts().GetVulnerabilities(ctx, "library", "nginx", "latest", "")
//
// # Models
//
// Every model carries a declarative schema. Construct and ConstructList
// validate a raw JSON payload against that schema before decoding it, so a
// successfully built value always has its required members and the declared
// member types. Unknown members are ignored. Validation failures are reported
// as a *ValidationError listing every offending field path:
//
//	user, err := harbor.Construct[harbor.UserResp](raw)
//	var verr *harbor.ValidationError
//	if errors.As(err, &verr) && verr.HasField("user_id") { ... }
//
// Request bodies are checked the same way with Validate before they are sent.
//
// # Errors
//
// Every non-2xx response becomes a *StatusError. Status codes with a
// dedicated meaning also match a sentinel through errors.Is:
//
//	400 ErrBadRequest
//	401 ErrUnauthorized
//	403 ErrForbidden
//	404 ErrNotFound
//	412 ErrPreconditionFailed
//	500 ErrInternalServerError
//
// Network failures that outlive the retry policy are reported as a
// *TransportError. Client-side failures wrap ErrClient or ErrConfiguration.
//
// # Caching
//
// GET results can be cached by a MemoryCache, shared between processes
// through a NATSKVCache backed by a JetStream KeyValue bucket, or disabled
// with NoOpCache. NewCacheFromConfig selects the backend from a CacheConfig.
package harbor
