// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app runs the native event loop of an application.

A Loop reads native events from a window system connection, converts
them to the platform independent types of the io packages and delivers
them to a Host implemented by the application:

	src, err := x11.Open()
	if err != nil {
		log.Fatal(err)
	}
	l := app.NewLoop(src, host)
	if _, err := l.OpenWindow(app.WindowOptions{Title: "Hello"}); err != nil {
		log.Fatal(err)
	}
	if err := l.Run(); err != nil {
		log.Fatal(err)
	}

Run blocks until the application terminates. All Host methods are
called from the goroutine running Run, one event at a time. Use
Invoke to run a function on that goroutine from elsewhere.

# Termination

Termination is negotiated with the host. AttemptTerminate asks
Host.ShouldTerminate, which answers TerminateCancel, TerminateNow or
TerminateDefer. A deferred termination waits, for as long as it takes,
until the host calls MayTerminateNow.
*/
package app
