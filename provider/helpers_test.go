package provider_test

import (
	"context"
	"errors"
	"strings"
)

// echoProvider returns "echo:<input>".
type echoProvider struct {
	name string
}

func (e *echoProvider) Name() string                       { return e.name }
func (e *echoProvider) IsAvailable(_ context.Context) bool { return true }
func (e *echoProvider) Execute(_ context.Context, input string) (string, error) {
	return "echo:" + input, nil
}

// scriptedProvider returns err when set, otherwise out. It counts calls.
type scriptedProvider struct {
	name      string
	out       string
	err       error
	available bool
	calls     int
}

func (s *scriptedProvider) Name() string                       { return s.name }
func (s *scriptedProvider) IsAvailable(_ context.Context) bool { return s.available }
func (s *scriptedProvider) Execute(_ context.Context, input string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.out + ":" + strings.ToUpper(input), nil
}

var errBoom = errors.New("boom")
