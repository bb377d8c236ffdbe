// Package net provides non-blocking TCP sockets driven by a dispatcher.
//
// TCPConnector, TCPConnection and TCPListener never block their OS
// thread: when the kernel reports EAGAIN or EINPROGRESS they suspend
// the calling dispatch context and resume it from the dispatcher's
// completion notifier. All calls must therefore come from contexts of
// the owning dispatcher.
//
// Descriptor readiness requires the Linux notifier; on other platforms
// operations fail with dispatch.ErrUnsupportedPlatform.
package net
