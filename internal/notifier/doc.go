// Package notifier delivers run notifications to the user.
//
// Fatal configuration errors and run completion are reported through a Notifier.
// The console notifier writes to stdout/stderr; the Telegram and Twitter notifiers
// post the same message to a chat or timeline so unattended runs can be followed.
package notifier
