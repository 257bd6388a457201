// Package rest provides typed JSON helpers over httpclient.Adapter.
//
//	resp, err := rest.Post[chatResponse](ctx, client, "/chat/completions", body)
package rest
