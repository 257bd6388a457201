// Package httpclient is the outbound HTTP layer shared by the hosted AI
// adapters. An Adapter carries a base URL, default headers, auth and a
// timeout; every non-2xx response comes back as a classified *Error so
// callers can tell auth problems from rate limits from outages.
//
//	c, _ := httpclient.New(httpclient.Config{
//	    Name:    "elevenlabs",
//	    BaseURL: "https://api.elevenlabs.io",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "xi-api-key"),
//	})
//	resp, err := c.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/v1/text-to-speech/abc", Body: payload})
//
// Multipart uploads pass a *MultipartBody as the request body.
package httpclient
