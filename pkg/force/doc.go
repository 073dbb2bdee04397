// Package force provides types, interfaces, and helpers for working with the
// Salesforce Metadata API.
//
// # Overview
//
// The force package defines the input value model (Record, Field, Table), the
// normalized result model (Result, ResultRecord, Null), the error taxonomy for
// the SOAP wire protocol, and the MetadataClient interface covering the full
// metadata operation surface (schema CRUD, describe/list, retrieve/deploy and
// their status checks). A concrete implementation is provided by the
// forceclient package, which wires configuration, transport, authentication,
// and caching. Most consumers should import forceclient to construct a client
// and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/trestletech/goforce/pkg/force"
//	  "github.com/trestletech/goforce/pkg/forceclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := forceclient.New(ctx, &force.Config{
//	    Username: "user@example.com",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Metadata().DescribeMetadata(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = res
//	}
//
// # Submitting metadata
//
// Metadata components are expressed as ordered Records so that serialization
// preserves field order, which some operations require:
//
//	field := force.Record{Fields: []force.Field{
//	  {Name: "fullName", Value: "Account.Foo__c"},
//	  {Name: "label", Value: "Foo"},
//	  {Name: "length", Value: 100},
//	  {Name: "type", Value: "Text"},
//	}}
//	res, err := cli.Metadata().CreateMetadata(ctx, "CustomField", []force.Record{field})
//
// # Errors
//
// Wire-level failures are represented by TransportError,
// MalformedResponseError, ProtocolFaultError, and ApplicationFaultError.
// Helpers such as IsSessionExpired and IsProtocolFault make it easy to branch
// on common cases. Per-component failures reported inside a successful
// response are data, not errors: inspect the "success" field of the returned
// rows.
//
// # Caching
//
// DescribeMetadata and ListMetadata results can be cached through the Cache
// abstraction, with in-memory and NATS KV backends available via
// NewCacheFromConfig. Cache failures are advisory and never fail a call.
package force
