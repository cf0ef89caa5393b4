// Package harborclient provides the primary entry point for constructing a
// Harbor v2.0 REST API client that implements the harbor.Client interface.
//
// It layers configuration, the retrying HTTP transport and Basic
// authentication on top of the resource interfaces and models defined in the
// harbor package. Most applications build a client here and then use the
// returned harbor.Client to reach the resource clients, for example
// Artifacts(), Scanners() or Retention().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/go-openapi/swag"
//	  "github.com/fivetwenty-io/harbor-client/pkg/harbor"
//	  "github.com/fivetwenty-io/harbor-client/pkg/harborclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := harborclient.NewWithPassword(ctx, "https://harbor.example.com", "robot$ci", "secret")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  artifacts, err := cli.Artifacts().List(ctx, "library", "nginx", &harbor.ArtifactListOptions{
//	    WithScanOverview: swag.Bool(true),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = artifacts
//	}
//
// Configuration
//
// LoadConfig reads a YAML file and HARBOR_* environment variables:
//
//	url: https://harbor.example.com
//	username: admin
//	retry_budget: 30s
//	cache:
//	  type: memory
//	  ttl: 1m
//
// Secrets are best supplied through HARBOR_SECRET or HARBOR_CREDENTIALS.
// SaveConfig never writes them.
//
// Errors
//
// Non-2xx responses are returned as *harbor.StatusError and match the
// harbor.ErrNotFound family of sentinels with errors.Is. Payloads that do not
// satisfy a model schema yield *harbor.ValidationError. Network failures that
// outlast the retry policy yield *harbor.TransportError.
package harborclient
