// Package rocketchat provides a client for the Rocket.Chat REST API
// (/api/v1).
//
// The client wraps [github.com/go-resty/resty/v2] and exposes typed
// wrappers for authentication, channels, private groups, direct messages,
// users, chat messages and settings.
//
// # Basic Usage
//
//	server := rocketchat.New("https://chat.example.com",
//	    rocketchat.WithTimeout(10*time.Second),
//	)
//
//	if err := server.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := server.Login(ctx, "bot", password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Logout(ctx)
//
//	msg, err := session.Chat().PostMessage(ctx, rocketchat.ByRoomName("general"),
//	    rocketchat.PostMessageOptions{Text: "deploy finished"})
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// all configuration is validated when [Server.Connect] is called.
//
// # Errors
//
// Every call makes exactly one HTTP request and nothing is retried.
// Failures are reported as:
//
//   - [*HTTPError] for 5xx responses (and non-200 responses of [Server.Info]);
//   - [*JSONParseError] when the body is not a JSON object;
//   - [*StatusError] when the server rejects the request, carrying the
//     message and errorType of the response;
//   - [*ArgumentError] for arguments rejected before sending;
//   - the underlying network error, unchanged, when no response arrived.
//
// A few lookups treat "not found" as a result rather than an error:
// [Rooms.Info] and [Users.Info] return nil, and [Rooms.Delete],
// [Rooms.AddOwner], [Rooms.RemoveOwner], [IM.Delete] and [Users.Delete]
// return false.
//
// # Authentication
//
// [Server.Login] exchanges a username and password for a [Token].
// Personal access tokens are used through [NewToken] and
// [Server.SessionFromToken]. The token is sent in the X-Auth-Token and
// X-User-Id headers of every request made through the [Session].
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewSlogLogger]. The default
// [NoopLogger] discards all log output. Request bodies are never logged.
package rocketchat
