// Package fallback implements cache-aside resolution with static fallbacks:
// look in the cache, otherwise ask the producer under a timeout, otherwise
// serve a random element of the feature's fallback pool when the failure is a
// connectivity problem.
package fallback

import (
	"context"
	"errors"
	"net"
	"reflect"
	"strings"
	"syscall"
)

// Class is the outcome of classifying a producer error.
type Class int

const (
	// Fatal errors are returned to the caller unchanged.
	Fatal Class = iota
	// Fallbackable errors are replaced by a fallback value.
	Fallbackable
)

func (c Class) String() string {
	if c == Fallbackable {
		return "fallbackable"
	}
	return "fatal"
}

// Fallbacker is implemented by errors that know whether they are a
// connectivity failure. It takes precedence over every other rule.
type Fallbacker interface {
	Fallbackable() bool
}

// connectivityTokens are matched case-sensitively against the error message
// and the Go type name of every error in the chain.
var connectivityTokens = []string{
	"ENOTFOUND",
	"ECONNREFUSED",
	"ETIMEDOUT",
	"ECONNRESET",
	"Network Error",
	"timeout",
}

// Classify decides whether err should be hidden behind fallback data.
//
// Rules, first match wins:
//  1. an error in the chain implements Fallbacker;
//  2. a deadline, network timeout, DNS not-found, or refused/reset/timed-out connection;
//  3. the message or an error type name contains a connectivity token.
//
// Anything else, nil included, is Fatal.
func Classify(err error) Class {
	if err == nil {
		return Fatal
	}

	var fb Fallbacker
	if errors.As(err, &fb) {
		if fb.Fallbackable() {
			return Fallbackable
		}
		return Fatal
	}

	if isConnectivityError(err) {
		return Fallbackable
	}

	if containsToken(err.Error()) {
		return Fallbackable
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if containsToken(typeName(e)) {
			return Fallbackable
		}
	}

	return Fatal
}

func isConnectivityError(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT)
}

func containsToken(s string) bool {
	for _, token := range connectivityTokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
