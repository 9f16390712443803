// Package codec converts action batches and their results to and from the
// JSON payload carried inside a sealed envelope.
//
// Requests are {"actions":[{method, params, optional}]}. Responses are
// {"results":[{"status":"success","value":…} | {"status":"failure","code":…,"message":…}]}.
// Unknown fields are ignored on decode. The codec knows nothing about
// requests; matching result counts to actions is the registry's job.
package codec
