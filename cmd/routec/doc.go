// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the routec CLI commands.
//
// Every command is built by a constructor that receives the App, the
// composition root holding the configuration provider, the route loader and
// the output writers. Tests build an App with buffers and fake providers and
// drive the cobra tree directly.
package cmd
