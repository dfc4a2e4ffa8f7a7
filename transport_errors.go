package rocketchat

import (
	"context"
	"errors"
	"net"
)

// Transport errors are returned to the caller untouched; these helpers only
// decide how loudly a failure is logged.

// isCallerCancellation reports failures caused by the caller's own context
// (cancellation or deadline), as opposed to the server or the network.
func isCallerCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isDNSFailure(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
